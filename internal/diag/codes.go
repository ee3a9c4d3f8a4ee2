package diag

// Phase identifies which pass produced a diagnostic. Message prefixes
// are stable and documented in spec.md §6.4 so downstream tools can grep
// on them regardless of wording changes to the message body.
type Phase string

const (
	PhaseLexer  Phase = "lexer"
	PhaseParse  Phase = "parse"
	PhaseModule Phase = "module"
	PhaseImport Phase = "import"
	PhaseType   Phase = "type"
	PhaseOwn    Phase = "own"
	PhaseBorrow Phase = "borrow"
	PhaseDrop   Phase = "drop"
	PhaseEmpOff Phase = "emp off"
	PhaseMMOff  Phase = "emp mm off"
)

// Prefix returns the stable "phase: " prefix used in rendered diagnostic
// text (spec.md §6.4).
func (p Phase) Prefix() string { return string(p) + ": " }

// Error code taxonomy, organized by phase. Codes are never reused or
// renumbered once shipped; a diagnostic's Code is part of its identity
// for tools that key off it (see internal/diag's JSON encoder).
const (
	// Lexer
	LEX001 = "LEX001" // invalid byte / unterminated literal
	LEX002 = "LEX002" // unterminated string or char literal

	// Parser
	PAR001 = "PAR001" // unexpected token
	PAR002 = "PAR002" // missing closing delimiter
	PAR003 = "PAR003" // invalid declaration syntax

	// Module / loader (spec.md §4.1, §7)
	MOD001 = "MOD001" // module not found
	MOD002 = "MOD002" // ambiguous module (one search base holds both <rel>.em and <rel>/mod.em)
	MOD003 = "MOD003" // imported module failed to load
	MOD004 = "MOD004" // circular module dependency

	// Import / view builder
	IMP001 = "IMP001" // unknown imported symbol
	IMP002 = "IMP002" // import of non-exported symbol without allow-private
	IMP003 = "IMP003" // name conflict between local item and import, or between wildcard imports

	// Type checker (spec.md §4.2)
	TYP001 = "TYP001" // type mismatch
	TYP002 = "TYP002" // unknown identifier / type
	TYP003 = "TYP003" // no matching overload
	TYP004 = "TYP004" // ambiguous overload (tie)
	TYP005 = "TYP005" // manual-MM function used outside @emp mm off
	TYP006 = "TYP006" // unresolved auto after inference
	TYP007 = "TYP007" // invalid dyn cast
	TYP008 = "TYP008" // trait impl does not satisfy trait signature
	TYP009 = "TYP009" // non-exhaustive match
	TYP010 = "TYP010" // duplicate match arm

	// Ownership checker (spec.md §4.3)
	OWN001 = "OWN001" // use after move
	OWN002 = "OWN002" // double move
	OWN003 = "OWN003" // double drop
	OWN004 = "OWN004" // drop of possibly-moved binding

	// Borrow checker (spec.md §4.4)
	BOR001 = "BOR001" // conflicting mutable borrow
	BOR002 = "BOR002" // conflicting shared borrow
	BOR003 = "BOR003" // assignment or move while borrowed
	BOR004 = "BOR004" // borrowed reference escapes unsafe boundary

	// Drop inserter (spec.md §4.5)
	DRP001 = "DRP001" // break/continue used outside of a loop
	DRP002 = "DRP002" // binding may be moved on some paths at a scope, return or loop exit
)
