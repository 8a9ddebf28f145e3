package directive

import "fmt"

// DefineSymbolError is returned when a DEF statement is missing its name
// or value.
type DefineSymbolError struct {
	Text string
}

func (e *DefineSymbolError) Error() string {
	return fmt.Sprintf("directive: incomplete DEF definition: %s", e.Text)
}

// DefineAssignmentError is returned when a DEF statement uses an operator
// other than =, EQU, or EQUS.
type DefineAssignmentError struct {
	Operator string
}

func (e *DefineAssignmentError) Error() string {
	return fmt.Sprintf("directive: invalid DEF assignment operator %q", e.Operator)
}

// SectionDeclarationError is returned when a SECTION statement does not
// match the declaration grammar.
type SectionDeclarationError struct {
	Text string
}

func (e *SectionDeclarationError) Error() string {
	return fmt.Sprintf("directive: malformed SECTION declaration: %s", e.Text)
}

// SectionBankError is returned when a SECTION's BANK option is not a
// number in 0..7.
type SectionBankError struct {
	Text string
}

func (e *SectionBankError) Error() string {
	return fmt.Sprintf("directive: invalid SECTION bank %q, want 0-7", e.Text)
}

// SectionAlignError is returned when a SECTION's ALIGN option is not one
// of 0, 1, 2, 4, 8.
type SectionAlignError struct {
	Text string
}

func (e *SectionAlignError) Error() string {
	return fmt.Sprintf("directive: invalid SECTION alignment %q, want 0, 1, 2, 4 or 8", e.Text)
}

// StorageValueError is returned when a DS/DB/DW statement carries a value
// that is not a valid expression, or names an unknown storage directive.
type StorageValueError struct {
	Text string
}

func (e *StorageValueError) Error() string {
	return fmt.Sprintf("directive: invalid storage value %q", e.Text)
}
