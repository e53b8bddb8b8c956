package fieldschema

import "errors"

var (
	ErrEmptyFieldName     = errors.New("field name cannot be empty")
	ErrDuplicateFieldName = errors.New("a field with this name already exists")
	ErrNoSelectOptions    = errors.New("a SELECT field needs at least one option")
	ErrNotEditing         = errors.New("no field is being edited")
	ErrIndexOutOfRange    = errors.New("field index out of range")

	ErrMissingRequiredField = errors.New("this field is required")
	ErrInvalidNumber        = errors.New("value must be a number")
	ErrInvalidOption        = errors.New("value is not one of the allowed options")
	ErrInvalidBoolean       = errors.New("value must be true or false")

	ErrNoFieldsSelected = errors.New("select at least one field to export")
)
