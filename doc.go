// Package contractgen turns contract templates with variable, clause
// numbering, optional capsule and signature markers into live previews and
// final documents.
//
// Most callers load a catalog, build an orchestrator and ask it for fields,
// previews or rendered output:
//
//	catalog, err := contractgen.LoadCatalog(os.DirFS("bundles"))
//	gen := contractgen.NewOrchestrator(orchestrator.WithCatalog(catalog))
//	page, err := gen.Generate(ctx, orchestrator.Request{TemplateID: "compraventa"})
package contractgen
