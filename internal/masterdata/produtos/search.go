package produtos

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldSearchTerm strips diacritics so "orçamento" and "orcamento" match the
// same rows. The descricao column is expected to be indexed with unaccent on
// the database side; this keeps the client-supplied term consistent with it.
func FoldSearchTerm(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}
