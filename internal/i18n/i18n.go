// Package i18n holds the player-facing message catalogs.
package i18n

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Message identifiers.
const (
	MsgWelcome         = "WELCOME"
	MsgDrawerOpened    = "DRAWER_OPENED"
	MsgDrawerEmpty     = "DRAWER_EMPTY"
	MsgBookCode        = "BOOK_CODE"
	MsgSafeOpened      = "SAFE_OPENED"
	MsgSafeNeedsCode   = "SAFE_NEEDS_CODE"
	MsgSafeAlreadyOpen = "SAFE_ALREADY_OPEN"
	MsgPaintingHint    = "PAINTING_HINT"
	MsgPlantHint       = "PLANT_HINT"
	MsgDoorOpened      = "DOOR_OPENED"
	MsgDoorLocked      = "DOOR_LOCKED"
	MsgTimeUp          = "TIME_UP"
	MsgNothingThere    = "NOTHING_THERE"
	MsgUnknownObject   = "UNKNOWN_OBJECT"
	MsgInventory       = "INVENTORY"
	MsgInventoryEmpty  = "INVENTORY_EMPTY"
	MsgTimeLeft        = "TIME_LEFT"
	MsgPuzzlesSolved   = "PUZZLES_SOLVED"
	MsgFacing          = "FACING"
	MsgNothing         = "NOTHING"
)

// Catalog translates message identifiers and free text for one locale.
type Catalog struct {
	locale string
	po     *gotext.Po
}

// Load returns the catalog for locale.
func Load(locale string) (*Catalog, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	data, err := locales.ReadFile("locales/" + locale + ".po")
	if err != nil {
		return nil, fmt.Errorf("unsupported locale %q (have %s)", locale, strings.Join(Locales(), ", "))
	}
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{locale: locale, po: po}, nil
}

// MustLoad is Load for the built-in locales.
func MustLoad(locale string) *Catalog {
	c, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Locales lists the embedded locales.
func Locales() []string {
	entries, _ := locales.ReadDir("locales")
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".po"))
	}
	sort.Strings(out)
	return out
}

// Locale returns the catalog's locale.
func (c *Catalog) Locale() string {
	return c.locale
}

// Get translates id and formats it with args. Unknown ids come back as-is,
// which lets room content (hint texts) pass through untranslated.
func (c *Catalog) Get(id string, args ...any) string {
	return c.po.Get(id, args...)
}
