// Package naming canonicalizes free-text names and email addresses into
// comparable tokens.
//
// Normalization is ASCII case-folding only: lowercase, trim, collapse
// internal whitespace. Email-derived names split the address local part on
// dots, treating the first segment as the given name and the remainder as
// the family name. The package also hosts the ordered alias table used to
// pull named fields out of loosely-structured tabular input.
package naming
