package interact3d

import (
	"strings"

	"github.com/gobwas/glob"
)

// QueryBy selects whether Opaq path tokens match against an element's Name
// or its ID.
type QueryBy int

const (
	QueryByName QueryBy = iota
	QueryByID
)

// QueryOptions configures Context.Query / Element.Query.
type QueryOptions struct {
	Separator string // defaults to "/"
	By        QueryBy
}

// Query resolves a glob path (§4.9) against the Context's roots, returning
// every matching element found by depth-first discovery. No ordering
// guarantee is given beyond that.
func (ctx *Context) Query(path string, opts QueryOptions) ([]*Element, error) {
	var all []*Element
	for _, root := range ctx.roots {
		matches, err := root.query(path, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, matches...)
	}
	return all, nil
}

// Query resolves a glob path against e's own children. Named tokens match
// e's descendants only; a leading "**" token also matches e itself.
func (e *Element) Query(path string, opts QueryOptions) ([]*Element, error) {
	return e.query(path, opts)
}

func (e *Element) query(path string, opts QueryOptions) ([]*Element, error) {
	sep := opts.Separator
	if sep == "" {
		sep = "/"
	}
	tokens := strings.Split(strings.Trim(path, sep), sep)
	return matchTokens([]*Element{e}, tokens, opts)
}

func matchTokens(frontier []*Element, tokens []string, opts QueryOptions) ([]*Element, error) {
	if len(tokens) == 0 {
		return frontier, nil
	}
	token := tokens[0]
	rest := tokens[1:]

	if token == "**" {
		var all []*Element
		for _, e := range frontier {
			all = append(all, e.flattenDepthFirst(nil)...)
		}
		return matchTokens(all, rest, opts)
	}

	g, err := glob.Compile(token, '/')
	if err != nil {
		return nil, err
	}

	var next []*Element
	for _, e := range frontier {
		for _, c := range e.Children {
			key := c.Name
			if opts.By == QueryByID {
				key = c.ID
			}
			if g.Match(key) {
				next = append(next, c)
			}
		}
	}
	return matchTokens(next, rest, opts)
}
