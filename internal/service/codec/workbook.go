package codec

import (
	"sort"
	"strconv"
	"strings"

	"inventario-backend/internal/domain/models"
)

// Workbook page names. The labels match the exported column language.
const (
	PageInventory     = "Inventário"
	PageMetrics       = "Métricas"
	PageEquipment     = "Equipamentos"
	PageByLocation    = "Por Local"
	PageByUser        = "Por Usuário"
	PageManufacturers = "Fabricantes"
)

// BuildWorkbook derives the multi-sheet export artifact from the record
// sequence. All grouping uses exact string equality on the raw field value;
// the empty string is never a group key. Descending count sorts break ties
// by first appearance, so the output is deterministic for a given sequence.
func BuildWorkbook(title string, fs models.FieldSet, records []models.Record) models.Workbook {
	wb := models.Workbook{Title: title}

	wb.Pages = append(wb.Pages, inventoryPage(fs, records), metricsPage(records))

	if page, ok := equipmentPage(records); ok {
		wb.Pages = append(wb.Pages, page)
	}
	if page, ok := byLocationPage(records); ok {
		wb.Pages = append(wb.Pages, page)
	}
	if page, ok := byUserPage(records); ok {
		wb.Pages = append(wb.Pages, page)
	}
	if page, ok := manufacturersPage(records); ok {
		wb.Pages = append(wb.Pages, page)
	}

	for i := range wb.Pages {
		wb.Pages[i].AutoSize()
	}
	return wb
}

func inventoryPage(fs models.FieldSet, records []models.Record) models.SheetPage {
	page := models.SheetPage{
		Name:   PageInventory,
		Header: append(fs.Labels(), models.TimestampLabel),
	}
	for _, rec := range records {
		row := make([]string, 0, fs.Len()+1)
		for _, f := range fs.Fields {
			row = append(row, rec.FieldValue(f.Key))
		}
		row = append(row, FormatTimestamp(rec.CreatedTime()))
		page.Rows = append(page.Rows, row)
	}
	return page
}

func metricsPage(records []models.Record) models.SheetPage {
	withEquipment := 0
	users := make(map[string]struct{})
	byType := newCounter()
	byLocation := newCounter()

	for _, rec := range records {
		if rec.EquipmentType != "" {
			withEquipment++
			byType.add(rec.EquipmentType)
		}
		if rec.User != "" {
			users[rec.User] = struct{}{}
		}
		if rec.Location != "" {
			byLocation.add(rec.Location)
		}
	}

	rows := [][]string{
		{"Total de registros", strconv.Itoa(len(records))},
		{"Com equipamento informado", strconv.Itoa(withEquipment)},
		{"Usuários distintos", strconv.Itoa(len(users))},
		{},
		{"Por equipamento"},
	}
	for _, e := range byType.sortedDesc() {
		rows = append(rows, []string{e.key, strconv.Itoa(e.count)})
	}
	rows = append(rows, []string{}, []string{"Por local"})
	for _, e := range byLocation.sortedDesc() {
		rows = append(rows, []string{e.key, strconv.Itoa(e.count)})
	}

	return models.SheetPage{Name: PageMetrics, Rows: rows}
}

func equipmentPage(records []models.Record) (models.SheetPage, bool) {
	byType := newCounter()
	for _, rec := range records {
		if rec.EquipmentType != "" {
			byType.add(rec.EquipmentType)
		}
	}
	if byType.empty() {
		return models.SheetPage{}, false
	}

	page := models.SheetPage{Name: PageEquipment, Header: []string{"Equipamento", "Quantidade"}}
	for _, e := range byType.sortedDesc() {
		page.Rows = append(page.Rows, []string{e.key, strconv.Itoa(e.count)})
	}
	return page, true
}

// byLocationPage lists (location, equipment type) pair counts. Locations
// appear in order of first appearance in the sequence, and so do the types
// within each location.
func byLocationPage(records []models.Record) (models.SheetPage, bool) {
	var locations []string
	perLocation := make(map[string]*counter)

	for _, rec := range records {
		if rec.Location == "" {
			continue
		}
		c, ok := perLocation[rec.Location]
		if !ok {
			c = newCounter()
			perLocation[rec.Location] = c
			locations = append(locations, rec.Location)
		}
		if rec.EquipmentType != "" {
			c.add(rec.EquipmentType)
		}
	}
	if len(locations) == 0 {
		return models.SheetPage{}, false
	}

	page := models.SheetPage{Name: PageByLocation, Header: []string{"Local", "Equipamento", "Quantidade"}}
	for _, loc := range locations {
		for _, e := range perLocation[loc].entries() {
			page.Rows = append(page.Rows, []string{loc, e.key, strconv.Itoa(e.count)})
		}
	}
	return page, true
}

func byUserPage(records []models.Record) (models.SheetPage, bool) {
	var users []string
	equipment := make(map[string][]string)

	for _, rec := range records {
		if rec.User == "" || rec.EquipmentType == "" {
			continue
		}
		if _, ok := equipment[rec.User]; !ok {
			users = append(users, rec.User)
		}
		equipment[rec.User] = append(equipment[rec.User], rec.EquipmentType)
	}
	if len(users) == 0 {
		return models.SheetPage{}, false
	}

	sort.SliceStable(users, func(i, j int) bool {
		return len(equipment[users[i]]) > len(equipment[users[j]])
	})

	page := models.SheetPage{Name: PageByUser, Header: []string{"Usuário", "Total", "Equipamentos"}}
	for _, user := range users {
		items := equipment[user]
		page.Rows = append(page.Rows, []string{
			user,
			strconv.Itoa(len(items)),
			strings.Join(items, ", "),
		})
	}
	return page, true
}

func manufacturersPage(records []models.Record) (models.SheetPage, bool) {
	byManufacturer := newCounter()
	for _, rec := range records {
		if rec.Manufacturer != "" {
			byManufacturer.add(rec.Manufacturer)
		}
	}
	if byManufacturer.empty() {
		return models.SheetPage{}, false
	}

	page := models.SheetPage{Name: PageManufacturers, Header: []string{"Fabricante", "Quantidade"}}
	for _, e := range byManufacturer.sortedDesc() {
		page.Rows = append(page.Rows, []string{e.key, strconv.Itoa(e.count)})
	}
	return page, true
}

// counter tallies string keys while remembering first-appearance order.
type counter struct {
	keys   []string
	counts map[string]int
}

type counterEntry struct {
	key   string
	count int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *counter) empty() bool { return len(c.keys) == 0 }

// entries returns the tallies in first-appearance order.
func (c *counter) entries() []counterEntry {
	out := make([]counterEntry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, counterEntry{key: k, count: c.counts[k]})
	}
	return out
}

// sortedDesc returns the tallies sorted by descending count, ties broken by
// first appearance.
func (c *counter) sortedDesc() []counterEntry {
	out := c.entries()
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	return out
}
