package css

import (
	"bytes"
	"maps"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into class rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			if atRule == "@media" {
				query := joinTokens(parser.Values())
				rules := p.parseRules(parser, sheet, css.EndAtRuleGrammar)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: query, Rules: rules},
				})
				continue
			}
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.BeginRulesetGrammar:
			for _, rule := range p.parseRuleset(parser, sheet, data) {
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			}
		}
	}
}

// parseRules parses rulesets until the grammar type stop (or end of input).
func (p *Parser) parseRules(parser *css.Parser, sheet *Stylesheet, stop css.GrammarType) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, stop:
			return rules
		case css.BeginRulesetGrammar:
			rules = append(rules, p.parseRuleset(parser, sheet, data)...)
		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "nested at-rule is not supported: "+string(data))
		}
	}
}

// parseRuleset reads declarations of the ruleset just opened and creates a
// rule for each supported selector of the group.
func (p *Parser) parseRuleset(parser *css.Parser, sheet *Stylesheet, data []byte) []Rule {
	selectors := p.parseSelectors(data, parser.Values())
	props := p.parseDeclarations(parser, sheet)

	var rules []Rule
	for _, selStr := range selectors {
		sel := p.parseSelector(selStr, sheet)
		if !sel.IsSupported() {
			continue
		}
		// Clone properties for each rule
		propsCopy := make(map[string]string, len(props))
		maps.Copy(propsCopy, props)
		rules = append(rules, Rule{Selector: sel, Properties: propsCopy})
	}
	return rules
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	// Build full selector string from data and values
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser, sheet *Stylesheet) map[string]string {
	props := make(map[string]string)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			name := string(data)
			if gt == css.DeclarationGrammar {
				name = strings.ToLower(name)
			}
			value := joinTokens(parser.Values())
			if v, ok := strings.CutSuffix(value, "!important"); ok {
				sheet.Warnings = append(sheet.Warnings, "!important is ignored: "+name)
				value = strings.TrimSpace(v)
			}
			if value == "" {
				continue
			}
			props[name] = value
		}
	}
}

// parseSelector parses a single selector string into a Selector.
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) Selector {
	selStr = strings.TrimSpace(selStr)
	sel := Selector{Raw: selStr}

	if strings.EqualFold(selStr, ":root") {
		sel.Root = true
		return sel
	}

	// Check for unsupported selector patterns first
	if strings.ContainsAny(selStr, "+~> \t\n[*#") {
		sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+selStr)
		p.log.Debug("Skipping selector", zap.String("selector", selStr))
		return sel
	}
	if !strings.HasPrefix(selStr, ".") {
		sheet.Warnings = append(sheet.Warnings, "only class selectors are supported: "+selStr)
		p.log.Debug("Skipping element selector", zap.String("selector", selStr))
		return sel
	}

	class := strings.TrimPrefix(selStr, ".")
	if before, pseudo, found := strings.Cut(class, ":"); found {
		if !strings.EqualFold(pseudo, "hover") {
			sheet.Warnings = append(sheet.Warnings, "unsupported pseudo-class: "+selStr)
			p.log.Debug("Skipping pseudo-class selector", zap.String("selector", selStr))
			return sel
		}
		sel.Pseudo = PseudoHover
		class = before
	}
	if strings.Contains(class, ".") {
		sheet.Warnings = append(sheet.Warnings, "compound class selectors are not supported: "+selStr)
		return sel
	}
	sel.Class = class
	return sel
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// joinTokens rebuilds the source text of tokens with whitespace runs
// collapsed to a single space.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
