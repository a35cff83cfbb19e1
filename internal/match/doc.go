// Package match resolves candidate names against the record store.
//
// The Matcher scans a collection and returns every record satisfying the
// active name predicate: exact normalized equality for roster input, or
// compound given/family matching for email-derived names. Records whose
// stored identifier is malformed are excluded from matching and reported
// separately so operators can reconcile them by hand.
//
// The Scorer combines secondary identifiers (guardians, contact email, date
// of birth) into an advisory confidence percentage; PickWinner applies the
// cohort-preference and exact-name tie-break when several candidates
// survive, flagging the result ambiguous when order alone decided it.
package match
