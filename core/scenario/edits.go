package scenario

// Edit kinds understood by the simulator. Unknown kinds are skipped without
// error so that older engine versions tolerate newer scenario lists.
const (
	EditChangeTaktTime = "change_takt_time"
	EditAddBuffer      = "add_buffer"
	EditAddCrew        = "add_crew"
	EditMoveTrade      = "move_trade"
	EditRemoveTrade    = "remove_trade"
	EditDelayZone      = "delay_zone"
	EditSplitZone      = "split_zone"
)

// Edit is one discrete plan change. Parameters are loosely typed on purpose:
// each kind reads the keys it knows and warns about the rest.
type Edit struct {
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters"`
}

func (e Edit) intParam(keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := e.Parameters[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
	}
	return 0, false
}

func (e Edit) stringParam(key string) string {
	if v, ok := e.Parameters[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (e Edit) stringSliceParam(key string) []string {
	switch v := e.Parameters[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
