package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"nativestyle/css"
	"nativestyle/style"
)

// Document is an element tree together with the named styles it refers to
// and the context it is resolved in.
type Document struct {
	Context style.Context
	Styles  map[string]*style.Declaration
	Root    *Node
	// Stylesheet is the parsed embedded CSS, nil when there is none.
	Stylesheet *css.Stylesheet
}

type documentFile struct {
	Context    contextSection            `yaml:"context"`
	Stylesheet string                    `yaml:"stylesheet"`
	Styles     map[string]map[string]any `yaml:"styles"`
	Tree       *nodeSection              `yaml:"tree"`
}

type viewportSection struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

type contextSection struct {
	Viewport     viewportSection `yaml:"viewport"`
	FontScale    float64         `yaml:"font_scale"`
	FontSize     float64         `yaml:"font_size"`
	RootFontSize float64         `yaml:"root_font_size"`
	Hover        bool            `yaml:"hover"`
	Passthrough  []string        `yaml:"passthrough"`
	Variables    map[string]any  `yaml:"variables"`
	Lang         string          `yaml:"lang"`
	Direction    string          `yaml:"direction"`
	ColorScheme  string          `yaml:"color_scheme"`
}

type nodeSection struct {
	Tag      string         `yaml:"tag"`
	Text     string         `yaml:"text"`
	Lang     string         `yaml:"lang"`
	Hover    bool           `yaml:"hover"`
	Style    any            `yaml:"style"`
	Children []*nodeSection `yaml:"children"`
}

// LoadDocument decodes a YAML document. Values present in the document
// override those in defaults. Named styles come from the embedded CSS
// stylesheet (class selectors) and from the styles section, the latter
// wins on name clashes. All broken style references are reported at once.
func LoadDocument(data []byte, defaults style.Context, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var file documentFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("unable to decode document: %w", err)
	}
	if file.Tree == nil {
		return nil, errors.New("document has no tree")
	}

	ctx, err := file.Context.apply(defaults)
	if err != nil {
		return nil, err
	}

	doc := &Document{Styles: make(map[string]*style.Declaration)}

	if strings.TrimSpace(file.Stylesheet) != "" {
		sheet := css.NewParser(log).Parse([]byte(file.Stylesheet), "stylesheet")
		doc.Stylesheet = sheet
		if vars := sheet.Variables(); len(vars) > 0 {
			props := make(map[string]any, len(vars))
			for name, v := range vars {
				props[name] = v
			}
			ctx = ctx.With(style.WithCustomProperties(props))
		}
		for class, props := range sheet.Declarations() {
			doc.Styles[class] = style.Create(props)
		}
	}
	if len(file.Context.Variables) > 0 {
		ctx = ctx.With(style.WithCustomProperties(file.Context.Variables))
	}

	for name, props := range file.Styles {
		d := style.Create(props)
		if skipped := d.Skipped(); len(skipped) > 0 {
			log.Debug("Unsupported style keys ignored", zap.String("style", name), zap.Strings("keys", skipped))
		}
		doc.Styles[name] = d
	}
	doc.Context = ctx

	var errs error
	doc.Root = doc.buildNode(file.Tree, file.Tree.Tag, &errs)
	if errs != nil {
		return nil, errs
	}
	return doc, nil
}

func (c contextSection) apply(defaults style.Context) (style.Context, error) {
	var opts []style.ContextOption

	width, height := defaults.ViewportWidth, defaults.ViewportHeight
	if c.Viewport.Width > 0 {
		width = c.Viewport.Width
	}
	if c.Viewport.Height > 0 {
		height = c.Viewport.Height
	}
	opts = append(opts, style.WithViewport(width, height))

	if c.Viewport.Scale > 0 {
		opts = append(opts, style.WithViewportScale(c.Viewport.Scale))
	}
	if c.FontScale > 0 {
		opts = append(opts, style.WithFontScale(c.FontScale))
	}
	if c.FontSize > 0 {
		opts = append(opts, style.WithInheritedFontSize(c.FontSize))
	}
	if c.RootFontSize > 0 {
		opts = append(opts, style.WithRootFontSize(c.RootFontSize))
	}
	if c.Hover {
		opts = append(opts, style.WithHover(true))
	}
	if len(c.Passthrough) > 0 {
		opts = append(opts, style.WithPassthrough(c.Passthrough...))
	}
	if c.ColorScheme != "" {
		opts = append(opts, style.WithColorScheme(c.ColorScheme))
	}

	switch {
	case c.Direction != "":
		dir, ok := style.ParseDirection(c.Direction)
		if !ok {
			return style.Context{}, fmt.Errorf("invalid direction %q", c.Direction)
		}
		opts = append(opts, style.WithDirection(dir))
	case c.Lang != "":
		opts = append(opts, style.WithDirection(style.DirectionFromLocale(c.Lang)))
	}

	return defaults.With(opts...), nil
}

func (doc *Document) buildNode(s *nodeSection, path string, errs *error) *Node {
	if s.Tag == "" {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: element has no tag", path))
	}
	n := &Node{
		Tag:   s.Tag,
		Text:  s.Text,
		Lang:  s.Lang,
		Hover: s.Hover,
		Style: doc.styleList(s.Style, path, errs),
	}
	for i, c := range s.Children {
		if c == nil {
			continue
		}
		n.Children = append(n.Children, doc.buildNode(c, fmt.Sprintf("%s/%s[%d]", path, c.Tag, i), errs))
	}
	return n
}

// styleList converts an authored style reference into a style list. A
// string holds space separated style names, a mapping is an inline rule
// set, a sequence mixes both. Booleans and nulls are kept as falsy entries.
func (doc *Document) styleList(v any, path string, errs *error) style.List {
	switch v := v.(type) {
	case nil:
		return nil
	case bool:
		return style.List{v}
	case string:
		var list style.List
		for _, name := range strings.Fields(v) {
			d, ok := doc.Styles[name]
			if !ok {
				*errs = multierr.Append(*errs, fmt.Errorf("%s: unknown style %q", path, name))
				continue
			}
			list = append(list, d)
		}
		return list
	case map[string]any:
		return style.List{style.Create(v)}
	case []any:
		var list style.List
		for _, item := range v {
			list = append(list, doc.styleList(item, path, errs))
		}
		return list
	}
	*errs = multierr.Append(*errs, fmt.Errorf("%s: unsupported style entry of type %T", path, v))
	return nil
}
