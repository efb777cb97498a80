package ui

import (
	"encoding/hex"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tbarron/m365prof/internal/profile"
	"github.com/tbarron/m365prof/internal/store"
)

var (
	_ list.Item = profileItem{}
	_ list.Item = attrItem{}
)

// profileItem wraps [profile.Info] to implement [list.Item].
type profileItem struct {
	info profile.Info
}

func (i profileItem) FilterValue() string { return i.info.Name }
func (i profileItem) Title() string {
	if i.info.Default {
		return fmt.Sprintf("%s (default)", i.info.Name)
	}
	return i.info.Name
}
func (i profileItem) Description() string {
	if i.info.Identity == "" {
		return "no identity recorded"
	}
	return i.info.Identity
}

// attrItem is one attribute row in the detail view.
type attrItem struct {
	section string
	name    string
	value   store.Value
}

func (i attrItem) FilterValue() string { return i.name }
func (i attrItem) Title() string       { return fmt.Sprintf("[%s] %s", i.section, i.name) }
func (i attrItem) Description() string {
	return fmt.Sprintf("%s • %s", i.value.Kind, FormatValue(i.value))
}

// FormatValue renders an attribute value for display.
func FormatValue(v store.Value) string {
	switch v.Kind {
	case store.DWord:
		return fmt.Sprintf("%d (0x%08X)", v.Word, v.Word)
	case store.Binary:
		return hex.EncodeToString(v.Bytes)
	default:
		return v.Str
	}
}
