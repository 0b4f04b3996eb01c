package minelog

import (
	"fmt"
	"regexp"
	"strconv"
)

// ReplaceFunc computes the substitution for the first match of the pattern
// inside a record. groups[0] is the whole match; groups that did not
// participate are nil.
type ReplaceFunc func(groups [][]byte) []byte

const (
	partLiteral = -1
	partNamed   = -2 // resolved to a group number by bind
)

// templatePart is either a literal run or a group reference.
type templatePart struct {
	literal []byte
	group   int
	name    string
}

// template is a parsed replacement template.
type template struct {
	parts []templatePart
}

// parseTemplate parses a backslash-style replacement template:
//
//	\1 .. \99      group by number
//	\g<N>          group by number (\g<0> is the whole match)
//	\g<name>       group by name
//	\\ \n \r \t    escapes (also \a \b \f \v; \b is backspace)
//
// Any other backslash followed by an ASCII letter is an error; a backslash
// followed by anything else is kept literally.
func parseTemplate(src []byte) (*template, error) {
	t := &template{}
	var lit []byte

	flush := func() {
		if len(lit) > 0 {
			t.parts = append(t.parts, templatePart{literal: lit, group: partLiteral})
			lit = nil
		}
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		if c != '\\' {
			lit = append(lit, c)
			continue
		}
		if i+1 == len(src) {
			return nil, &TemplateError{Template: string(src), Offset: i, Message: "trailing backslash"}
		}

		i++
		c = src[i]
		switch {
		case c >= '1' && c <= '9':
			n := int(c - '0')
			if i+1 < len(src) && isDigit(src[i+1]) {
				i++
				n = n*10 + int(src[i]-'0')
			}
			flush()
			t.parts = append(t.parts, templatePart{group: n})
		case c == '0':
			return nil, &TemplateError{Template: string(src), Offset: i - 1, Message: `octal escapes are not supported, use \g<0>`}
		case c == 'g':
			end := -1
			if i+1 < len(src) && src[i+1] == '<' {
				for j := i + 2; j < len(src); j++ {
					if src[j] == '>' {
						end = j
						break
					}
				}
			}
			if end < 0 {
				return nil, &TemplateError{Template: string(src), Offset: i - 1, Message: `missing <...> after \g`}
			}
			ref := string(src[i+2 : end])
			if ref == "" {
				return nil, &TemplateError{Template: string(src), Offset: i - 1, Message: "empty group reference"}
			}
			flush()
			if n, err := strconv.Atoi(ref); err == nil {
				if n < 0 {
					return nil, &TemplateError{Template: string(src), Offset: i - 1, Message: fmt.Sprintf("invalid group number %d", n)}
				}
				t.parts = append(t.parts, templatePart{group: n})
			} else {
				t.parts = append(t.parts, templatePart{group: partNamed, name: ref})
			}
			i = end
		case c == '\\':
			lit = append(lit, '\\')
		case c == 'n':
			lit = append(lit, '\n')
		case c == 'r':
			lit = append(lit, '\r')
		case c == 't':
			lit = append(lit, '\t')
		case c == 'a':
			lit = append(lit, '\a')
		case c == 'b':
			lit = append(lit, '\b')
		case c == 'f':
			lit = append(lit, '\f')
		case c == 'v':
			lit = append(lit, '\v')
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			return nil, &TemplateError{Template: string(src), Offset: i - 1, Message: fmt.Sprintf(`bad escape \%c`, c)}
		default:
			lit = append(lit, '\\', c)
		}
	}
	flush()
	return t, nil
}

// bind resolves named references and checks group numbers against re.
func (t *template) bind(src []byte, re *regexp.Regexp) error {
	for i, p := range t.parts {
		switch {
		case p.group == partNamed:
			idx := re.SubexpIndex(p.name)
			if idx < 0 {
				return &TemplateError{Template: string(src), Message: fmt.Sprintf("unknown group name %q", p.name)}
			}
			t.parts[i].group = idx
		case p.group > re.NumSubexp():
			return &TemplateError{Template: string(src), Message: fmt.Sprintf("invalid group reference %d", p.group)}
		}
	}
	return nil
}

// expand appends the template applied to the submatch loc of subject to dst.
func (t *template) expand(dst, subject []byte, loc []int) []byte {
	for _, p := range t.parts {
		if p.group < 0 {
			dst = append(dst, p.literal...)
			continue
		}
		start, end := loc[2*p.group], loc[2*p.group+1]
		if start >= 0 {
			dst = append(dst, subject[start:end]...)
		}
	}
	return dst
}

// replacer rewrites a record by substituting the first match of re in it.
type replacer struct {
	re   *regexp.Regexp
	tmpl *template
	fn   ReplaceFunc
}

func newReplacer(re *regexp.Regexp, cfg *searchConfig) (*replacer, error) {
	switch {
	case cfg.replaceFunc != nil:
		return &replacer{re: re, fn: cfg.replaceFunc}, nil
	case cfg.hasTemplate:
		tmpl, err := parseTemplate(cfg.template)
		if err != nil {
			return nil, err
		}
		if err := tmpl.bind(cfg.template, re); err != nil {
			return nil, err
		}
		return &replacer{re: re, tmpl: tmpl}, nil
	default:
		return nil, nil
	}
}

// apply returns record with its first match replaced. A record the pattern
// does not match on its own (context assertions such as \B) is returned
// unchanged.
func (r *replacer) apply(record []byte) []byte {
	loc := r.re.FindSubmatchIndex(record)
	if loc == nil {
		return record
	}

	out := make([]byte, 0, len(record))
	out = append(out, record[:loc[0]]...)
	if r.fn != nil {
		groups := make([][]byte, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = record[loc[2*i]:loc[2*i+1]]
			}
		}
		out = append(out, r.fn(groups)...)
	} else {
		out = r.tmpl.expand(out, record, loc)
	}
	return append(out, record[loc[1]:]...)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// CheckReplacement reports whether template is a valid replacement for p,
// without running a search.
func CheckReplacement(p *Pattern, template []byte) error {
	tmpl, err := parseTemplate(template)
	if err != nil {
		return err
	}
	return tmpl.bind(template, p.re)
}
