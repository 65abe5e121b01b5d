package render

import (
	"strings"

	"github.com/goliatone/go-contractgen/pkg/markers"
	"github.com/goliatone/go-contractgen/pkg/model"
)

// Request carries everything a single render needs. Nothing in it is
// retained after Render returns.
type Request struct {
	Template    string
	Values      map[string]string
	Variables   []string
	Capsules    []model.Capsule
	Selected    []int
	Numbering   []model.NumberingDirective
	ActiveField string

	// Formatter defaults to HTMLFormatter, Ordinals to EnglishOrdinals and
	// Labeler to model.DefaultLabeler.
	Formatter Formatter
	Ordinals  OrdinalTable
	Labeler   model.Labeler
}

// Result is the rendered document plus the ordinal assigned to each active
// numbering directive, keyed by directive order.
type Result struct {
	Text     string
	Ordinals map[int]string
	Issues   []markers.Issue
}

// segment is one token of the parsed template and what it renders to.
type segment struct {
	tok      markers.Token
	text     string
	resolved bool
	drop     bool
}

// plan is the read-only context shared by the render stages.
type plan struct {
	req       Request
	doc       markers.Document
	formatter Formatter
	labeler   model.Labeler
	variables map[string]struct{}

	// capsules maps an index into doc.Capsules to the capsule it binds to.
	capsules map[int]boundCapsule
	// slugSpans maps a capsule slug to the spans bound to that capsule.
	slugSpans map[string][]markers.Span
	numbering map[int]binding
}

type boundCapsule struct {
	capsule  model.Capsule
	selected bool
}

// Render resolves a template against the supplied values and capsule
// selection. It never fails: markers it cannot resolve are left as found and
// reported in Result.Issues.
func Render(req Request) Result {
	return RenderDocument(markers.Parse(req.Template), req)
}

// RenderDocument is Render over an already parsed template. req.Template is
// ignored.
func RenderDocument(doc markers.Document, req Request) Result {
	p := newPlan(doc, req)
	issues := append([]markers.Issue(nil), doc.Issues...)
	issues = append(issues, p.bindCapsules()...)

	assignments := AssignOrdinals(req.Numbering, model.SelectedSlugs(req.Capsules, req.Selected), req.Ordinals)
	numbering, numberingIssues := bindNumbering(doc, assignments, p.slugSpans, p.removed)
	p.numbering = numbering
	issues = append(issues, numberingIssues...)
	markers.SortIssues(issues)

	segs := make([]segment, len(doc.Tokens))
	for i, tok := range doc.Tokens {
		segs[i] = segment{tok: tok}
	}
	for _, stage := range []func([]segment) []segment{
		p.resolveNumbering,
		p.resolveVariables,
		p.resolveCapsules,
		p.stripSignatures,
	} {
		segs = stage(segs)
	}

	ordinals := make(map[int]string, len(assignments))
	for _, a := range assignments {
		ordinals[a.Order] = a.Label
	}

	return Result{
		Text:     p.assemble(segs),
		Ordinals: ordinals,
		Issues:   issues,
	}
}

func newPlan(doc markers.Document, req Request) *plan {
	p := &plan{
		req:       req,
		doc:       doc,
		formatter: req.Formatter,
		labeler:   req.Labeler,
		variables: make(map[string]struct{}, len(req.Variables)),
		capsules:  make(map[int]boundCapsule),
		slugSpans: make(map[string][]markers.Span),
	}
	if p.formatter == nil {
		p.formatter = HTMLFormatter{}
	}
	if p.labeler == nil {
		p.labeler = model.DefaultLabeler
	}
	for _, name := range req.Variables {
		p.variables[name] = struct{}{}
	}
	return p
}

// bindCapsules correlates capsule spans with capsules by title. A marker may
// carry text after the title; exact titles take precedence. When two
// capsules share a title the first one listed wins.
func (p *plan) bindCapsules() []markers.Issue {
	var issues []markers.Issue
	chosen := model.SelectedSet(p.req.Selected)

	seen := make(map[string]struct{}, len(p.req.Capsules))
	var (
		owners []model.Capsule
		titles []string
	)
	for _, c := range p.req.Capsules {
		if _, dup := seen[c.Title]; dup {
			issues = append(issues, markers.Issue{Code: markers.IssueDuplicateCapsuleTitle, Offset: -1, Detail: c.Title})
			continue
		}
		seen[c.Title] = struct{}{}
		owners = append(owners, c)
		titles = append(titles, c.Title)
	}

	found := make([]bool, len(owners))
	for i, owner := range p.doc.BindCapsules(titles) {
		span := p.doc.Capsules[i]
		if owner < 0 {
			start := p.doc.Tokens[span.Start]
			issues = append(issues, markers.Issue{Code: markers.IssueUnknownCapsule, Offset: start.Offset, Detail: start.Title})
			continue
		}
		c := owners[owner]
		_, selected := chosen[c.ID]
		p.capsules[i] = boundCapsule{capsule: c, selected: selected}
		if c.Slug != "" {
			p.slugSpans[c.Slug] = append(p.slugSpans[c.Slug], span)
		}
		found[owner] = true
	}

	for i, c := range owners {
		if !found[i] {
			issues = append(issues, markers.Issue{Code: markers.IssueCapsuleNotFound, Offset: -1, Detail: c.Title})
		}
	}
	return issues
}

// removed reports whether the token at index disappears from the output:
// it sits in an unselected capsule or a signature block.
func (p *plan) removed(index int) bool {
	for i, span := range p.doc.Capsules {
		if bc, ok := p.capsules[i]; ok && !bc.selected && span.Covers(index) {
			return true
		}
	}
	for _, span := range p.doc.Signatures {
		if span.Covers(index) {
			return true
		}
	}
	return false
}

// insideBoundCapsule reports whether the token lies in a capsule that is
// correlated with a known capsule.
func (p *plan) insideBoundCapsule(index int) bool {
	for i, span := range p.doc.Capsules {
		if _, ok := p.capsules[i]; ok && span.Contains(index) {
			return true
		}
	}
	return false
}

func (p *plan) resolveNumbering(in []segment) []segment {
	out := make([]segment, len(in))
	copy(out, in)
	for i, seg := range out {
		if seg.tok.Kind != markers.KindNumbering || seg.resolved {
			continue
		}
		b, ok := p.numbering[i]
		if !ok {
			continue
		}
		a := b.assignment
		out[i].text = p.formatter.Clause(a.Position, a.Label, a.Title)
		if b.remainder != "" {
			out[i].text += p.formatter.Literal(b.remainder)
		}
		out[i].resolved = true
	}
	return out
}

func (p *plan) resolveVariables(in []segment) []segment {
	out := make([]segment, len(in))
	copy(out, in)
	for i, seg := range out {
		if seg.tok.Kind != markers.KindVariable || seg.resolved {
			continue
		}
		name := seg.tok.Name
		if _, ok := p.variables[name]; !ok {
			continue
		}
		if value := p.req.Values[name]; value != "" {
			active := p.req.ActiveField != "" && name == p.req.ActiveField && !p.insideBoundCapsule(i)
			out[i].text = p.formatter.Filled(name, value, active)
		} else {
			out[i].text = p.formatter.Empty(name, p.labeler(name))
		}
		out[i].resolved = true
	}
	return out
}

func (p *plan) resolveCapsules(in []segment) []segment {
	out := make([]segment, len(in))
	copy(out, in)
	for i, span := range p.doc.Capsules {
		bc, ok := p.capsules[i]
		if !ok {
			continue
		}
		if bc.selected {
			out[span.Start].drop = true
			out[span.End].drop = true
			continue
		}
		for j := span.Start; j <= span.End; j++ {
			out[j].drop = true
		}
	}
	return out
}

func (p *plan) stripSignatures(in []segment) []segment {
	out := make([]segment, len(in))
	copy(out, in)
	for _, span := range p.doc.Signatures {
		for j := span.Start; j <= span.End; j++ {
			out[j].drop = true
		}
	}
	return out
}

func (p *plan) assemble(segs []segment) string {
	var b strings.Builder
	for _, seg := range segs {
		if seg.drop {
			continue
		}
		if seg.resolved {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(p.formatter.Literal(seg.tok.Raw))
	}
	text := b.String()
	if f, ok := p.formatter.(Finalizer); ok {
		text = f.Finalize(text)
	}
	return text
}
