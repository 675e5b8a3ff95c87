package parser

// scopes records, per open scope, which identifiers have been declared and
// whether each names a typedef. The parser needs it to tell a type name from
// an ordinary identifier.
type scopes []map[string]bool

func newScopes() scopes { return scopes{{}} }

func (s *scopes) push() { *s = append(*s, map[string]bool{}) }

func (s *scopes) pop() {
	if len(*s) > 1 {
		*s = (*s)[:len(*s)-1]
	}
}

func (s scopes) add(name string, typedef bool) { s[len(s)-1][name] = typedef }

// isTypedef reports whether name, in the innermost scope declaring it, is a
// typedef name.
func (s scopes) isTypedef(name string) bool {
	for i := len(s) - 1; i >= 0; i-- {
		if typedef, ok := s[i][name]; ok {
			return typedef
		}
	}
	return false
}

func (s scopes) snapshot() scopes {
	out := make(scopes, len(s))
	for i, m := range s {
		out[i] = make(map[string]bool, len(m))
		for k, v := range m {
			out[i][k] = v
		}
	}
	return out
}
