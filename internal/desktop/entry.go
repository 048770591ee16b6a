package desktop

// Field identifies one of the recognized descriptor fields.
type Field uint8

const (
	FieldName Field = 1 << iota
	FieldExec
	FieldIcon
	FieldComment
)

// KeySeparator joins name and comment in a search key.
const KeySeparator = "|"

// Entry is one launchable application parsed from a descriptor file.
// A field may be set to an empty value ("Name=" sets Name to ""), so
// presence is tracked separately in Set.
type Entry struct {
	Name    string
	Exec    string
	Icon    string
	Comment string

	Set Field
}

// Has reports whether the field was present in the descriptor.
func (e Entry) Has(f Field) bool {
	return e.Set&f != 0
}

// Empty reports whether no field was set at all.
func (e Entry) Empty() bool {
	return e.Set == 0
}

// SearchKey returns the text used both to index and to fuzzy-match the entry:
// name and comment joined by KeySeparator, omitting whichever is absent.
func (e Entry) SearchKey() string {
	var key string
	if e.Has(FieldName) {
		key = e.Name
	}
	if e.Has(FieldComment) {
		if key != "" {
			key += KeySeparator
		}
		key += e.Comment
	}
	return key
}

// DisplayName is the name shown in listings.
func (e Entry) DisplayName() string {
	if !e.Has(FieldName) {
		return "Missing name"
	}
	return e.Name
}

// Launchable reports whether the entry carries a command to run.
func (e Entry) Launchable() bool {
	return e.Exec != ""
}
