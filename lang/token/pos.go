package token

// Pos identifies a token's source position: its byte offset into the chunk
// being scanned, shifted by one so the zero value means "no position" (the
// same convention go/token.Pos uses). Because the scanner only ever advances
// forward, Pos values are pairwise distinct within a single scan, which is
// exactly what lets the resolver use them as depth-map keys (see
// lang/resolver) and what lets two tokens with identical text but different
// occurrences compare unequal.
type Pos int

// NoPos is the zero Pos value, meaning "no position available".
const NoPos Pos = 0
