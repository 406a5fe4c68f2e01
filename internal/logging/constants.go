package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldSource     = "source"
	FieldSheet      = "sheet"
	FieldRow        = "row"
	FieldColumn     = "column"
	FieldPerson     = "person"
	FieldRoom       = "room"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCount      = "count"
	FieldDays       = "days"
	FieldTotal      = "total"
	FieldBalance    = "balance"
	FieldFormat     = "format"
	FieldDelimiter  = "delimiter"
	FieldOutputFile = "output_file"
	FieldComponent  = "component"
)
