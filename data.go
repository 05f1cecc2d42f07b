package spcd3

// Row is one dataset record: a mapping from feature name to its raw domain
// value. Values stay uninterpreted strings (the shape CSV parsing yields);
// the per-feature scale functions in PlotState decide how to read them.
type Row map[string]string

// IdentityFunc derives the stable identity of a row, used to look up its
// highlight state. Typically it returns one designated column.
type IdentityFunc func(Row) string

// LineState is the externally supplied highlight state for one row.
type LineState struct {
	Active bool
}

// StateLookup maps row identities to their highlight state. Rows absent
// from the lookup are active.
type StateLookup map[string]LineState

// Active reports whether the row with the given identity is active.
// A nil lookup and a missing identity both default to active.
func (s StateLookup) Active(id string) bool {
	st, ok := s[id]
	if !ok {
		return true
	}
	return st.Active
}

// Dataset is an ordered sequence of rows together with the external
// contracts needed to classify them. Row order is render order and carries
// no other meaning.
type Dataset struct {
	// Rows are the records to render, in draw order.
	Rows []Row

	// Identity derives each row's stable identity. Required when States
	// is set; with a nil Identity every row renders as active.
	Identity IdentityFunc

	// States holds the per-row highlight state. Nil means all rows are
	// active.
	States StateLookup
}

// rowActive resolves the highlight state for one row, applying the
// default-active policy.
func (d *Dataset) rowActive(row Row) bool {
	if d.States == nil || d.Identity == nil {
		return true
	}
	return d.States.Active(d.Identity(row))
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}
