package render

import (
	"maps"
	"strings"

	"go.uber.org/zap"

	"nativestyle/style"
)

// Resolver walks element trees and resolves every node's style.
type Resolver struct {
	log      *zap.Logger
	composer *style.Composer
}

func NewResolver(composer *style.Composer, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if composer == nil {
		composer = style.NewComposer(log, style.Options{})
	}
	return &Resolver{log: log.Named("render"), composer: composer}
}

// Resolve resolves the tree rooted at root. ctx provides everything that
// is not inherited from ancestors: viewport, custom properties, scales.
func (r *Resolver) Resolve(root *Node, ctx style.Context) *Element {
	if root == nil {
		return nil
	}
	return r.resolve(root, ctx, ctx.Inherited(), nil, 0)
}

// ResolveDocument resolves a loaded document with its own context.
func (r *Resolver) ResolveDocument(doc *Document) *Element {
	return r.Resolve(doc.Root, doc.Context)
}

func (r *Resolver) resolve(n *Node, base style.Context, in style.Inherited, text style.StyleMap, depth int) *Element {
	tag := strings.ToLower(n.Tag)
	if n.Lang != "" {
		in.Direction = style.DirectionFromLocale(n.Lang)
	}

	opts := []style.ContextOption{style.WithInherited(in)}
	if n.Hover {
		opts = append(opts, style.WithHover(true))
	}
	ctx := base.With(opts...)

	res := r.composer.Resolve(style.List{tagDefaults[tag], n.Style}, ctx)
	out := res.Style

	if textTags[tag] {
		for name, v := range text {
			if _, ok := out[name]; !ok {
				out[name] = v
			}
		}
		if _, ok := out["fontSize"]; !ok && in.FontSize != nil {
			out["fontSize"] = *in.FontSize
		}
	}

	childText := maps.Clone(text)
	for name := range inheritedTextProperties {
		if v, ok := out[name]; ok {
			if childText == nil {
				childText = make(style.StyleMap)
			}
			childText[name] = v
		}
	}

	r.log.Debug("Element resolved", zap.String("tag", tag), zap.Int("depth", depth), zap.String("direction", string(ctx.EffectiveDirection())), zap.Int("properties", len(out)))

	el := &Element{Tag: tag, Text: n.Text, Style: out}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		el.Children = append(el.Children, r.resolve(c, base, res.Children, childText, depth+1))
	}
	return el
}
