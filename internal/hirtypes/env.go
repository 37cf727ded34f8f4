package hirtypes

// Environment bundles the flat mappings described in spec §3.6: the
// name→Type table obtained by resolving every type alias, the
// record_name→[field] table, and the configured error type. Maps are kept
// alongside an explicit insertion-order slice so that every consumer that
// needs to iterate (generated-function emission, interface serialization)
// gets byte-reproducible output per §5 rather than Go's randomized map
// iteration order.
type Environment struct {
	aliases     map[string]Type
	aliasOrder  []string
	records     map[string]*RecordDefinition
	recordOrder []string
	errorType   Type
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		aliases: make(map[string]Type),
		records: make(map[string]*RecordDefinition),
	}
}

// AddAlias registers a type alias. Re-registering an existing name
// overwrites its target but does not duplicate the order entry.
func (e *Environment) AddAlias(name string, target Type) {
	if _, ok := e.aliases[name]; !ok {
		e.aliasOrder = append(e.aliasOrder, name)
	}
	e.aliases[name] = target
}

// Alias returns the unresolved target of an alias by name.
func (e *Environment) Alias(name string) (Type, bool) {
	t, ok := e.aliases[name]
	return t, ok
}

// AddRecord registers a record type definition.
func (e *Environment) AddRecord(def *RecordDefinition) {
	if _, ok := e.records[def.Name]; !ok {
		e.recordOrder = append(e.recordOrder, def.Name)
	}
	e.records[def.Name] = def
}

// Record looks up a record definition by name.
func (e *Environment) Record(name string) (*RecordDefinition, bool) {
	d, ok := e.records[name]
	return d, ok
}

// HasRecord reports whether name is a declared record.
func (e *Environment) HasRecord(name string) bool {
	_, ok := e.records[name]
	return ok
}

// RecordNames returns record names in deterministic insertion order.
func (e *Environment) RecordNames() []string {
	out := make([]string, len(e.recordOrder))
	copy(out, e.recordOrder)
	return out
}

// AliasNames returns alias names in deterministic insertion order.
func (e *Environment) AliasNames() []string {
	out := make([]string, len(e.aliasOrder))
	copy(out, e.aliasOrder)
	return out
}

// SetErrorType configures the error type used by try-placement validation
// and error-subsumption checks (spec §3.6, §6.4).
func (e *Environment) SetErrorType(t Type) { e.errorType = t }

// ErrorType returns the configured error type, if any.
func (e *Environment) ErrorType() (Type, bool) {
	if e.errorType == nil {
		return nil, false
	}
	return e.errorType, true
}
