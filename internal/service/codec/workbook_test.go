package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-backend/internal/domain/models"
)

func pageByName(t *testing.T, wb models.Workbook, name string) models.SheetPage {
	t.Helper()
	for _, p := range wb.Pages {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("workbook has no page %q", name)
	return models.SheetPage{}
}

func hasPage(wb models.Workbook, name string) bool {
	for _, p := range wb.Pages {
		if p.Name == name {
			return true
		}
	}
	return false
}

func TestBuildWorkbook_InventoryPage(t *testing.T) {
	wb := BuildWorkbook("Inventário", fieldSet(), sampleRecords())

	page := pageByName(t, wb, PageInventory)
	assert.Equal(t, []string{"Equipamento", "Patrimônio", "Local", "Fabricante", "Usuário", "Data"}, page.Header)
	require.Len(t, page.Rows, 3)
	assert.Equal(t, []string{"Notebook", "1001", "TI", "Dell", "Ana", "2024-07-25T17:53:20.000Z"}, page.Rows[0])
}

func TestBuildWorkbook_ColumnWidthsAutoSized(t *testing.T) {
	wb := BuildWorkbook("Inventário", fieldSet(), sampleRecords())

	page := pageByName(t, wb, PageInventory)
	require.Len(t, page.ColumnWidths, 6)

	// Equipment column: "Equipamento" (11) beats "Notebook" (8).
	assert.Equal(t, 11, page.ColumnWidths[0])
	// Timestamp column: the ISO instant (24) beats the label "Data".
	assert.Equal(t, 24, page.ColumnWidths[5])
}

func TestBuildWorkbook_EquipmentBreakdownSortedDescending(t *testing.T) {
	records := []models.Record{
		{EquipmentType: "Mouse"},
		{EquipmentType: "Mouse"},
		{EquipmentType: "Monitor"},
	}

	wb := BuildWorkbook("Inventário", fieldSet(), records)
	page := pageByName(t, wb, PageEquipment)

	assert.Equal(t, [][]string{
		{"Mouse", "2"},
		{"Monitor", "1"},
	}, page.Rows)
}

func TestBuildWorkbook_DescendingTiesBreakByFirstAppearance(t *testing.T) {
	records := []models.Record{
		{EquipmentType: "Teclado"},
		{EquipmentType: "Mouse"},
		{EquipmentType: "Mouse"},
		{EquipmentType: "Teclado"},
	}

	wb := BuildWorkbook("Inventário", fieldSet(), records)
	page := pageByName(t, wb, PageEquipment)

	assert.Equal(t, [][]string{
		{"Teclado", "2"},
		{"Mouse", "2"},
	}, page.Rows)
}

func TestBuildWorkbook_MetricsPage(t *testing.T) {
	records := []models.Record{
		{EquipmentType: "Mouse", Location: "TI", User: "Ana"},
		{EquipmentType: "Mouse", Location: "TI", User: "Ana"},
		{EquipmentType: "", Location: "RH", User: "Bruno"},
	}

	wb := BuildWorkbook("Inventário", fieldSet(), records)
	page := pageByName(t, wb, PageMetrics)

	assert.Equal(t, [][]string{
		{"Total de registros", "3"},
		{"Com equipamento informado", "2"},
		{"Usuários distintos", "2"},
		{},
		{"Por equipamento"},
		{"Mouse", "2"},
		{},
		{"Por local"},
		{"TI", "2"},
		{"RH", "1"},
	}, page.Rows)
}

func TestBuildWorkbook_ByLocationGroupsInFirstAppearanceOrder(t *testing.T) {
	records := []models.Record{
		{Location: "TI", EquipmentType: "Notebook"},
		{Location: "RH", EquipmentType: "Mouse"},
		{Location: "TI", EquipmentType: "Mouse"},
		{Location: "TI", EquipmentType: "Notebook"},
	}

	wb := BuildWorkbook("Inventário", fieldSet(), records)
	page := pageByName(t, wb, PageByLocation)

	assert.Equal(t, [][]string{
		{"TI", "Notebook", "2"},
		{"TI", "Mouse", "1"},
		{"RH", "Mouse", "1"},
	}, page.Rows)
}

func TestBuildWorkbook_ByUserListsEquipmentInRecordOrder(t *testing.T) {
	records := []models.Record{
		{User: "Ana", EquipmentType: "Notebook"},
		{User: "Bruno", EquipmentType: "Mouse"},
		{User: "Ana", EquipmentType: "Monitor"},
		{User: "Ana", EquipmentType: ""}, // no equipment type, excluded
		{User: "", EquipmentType: "Teclado"},
	}

	wb := BuildWorkbook("Inventário", fieldSet(), records)
	page := pageByName(t, wb, PageByUser)

	assert.Equal(t, [][]string{
		{"Ana", "2", "Notebook, Monitor"},
		{"Bruno", "1", "Mouse"},
	}, page.Rows)
}

func TestBuildWorkbook_ManufacturersPage(t *testing.T) {
	wb := BuildWorkbook("Inventário", fieldSet(), sampleRecords())
	page := pageByName(t, wb, PageManufacturers)

	assert.Equal(t, [][]string{
		{"Logitech", "2"},
		{"Dell", "1"},
	}, page.Rows)
}

func TestBuildWorkbook_EmptyGroupKeysNeverCounted(t *testing.T) {
	records := []models.Record{
		{EquipmentType: "", Location: "", Manufacturer: "", User: ""},
	}

	wb := BuildWorkbook("Inventário", fieldSet(), records)

	assert.False(t, hasPage(wb, PageEquipment))
	assert.False(t, hasPage(wb, PageByLocation))
	assert.False(t, hasPage(wb, PageByUser))
	assert.False(t, hasPage(wb, PageManufacturers))
}

func TestBuildWorkbook_NoGroupingNoTrimmingNoCaseFolding(t *testing.T) {
	records := []models.Record{
		{EquipmentType: "mouse"},
		{EquipmentType: "Mouse"},
		{EquipmentType: "Mouse "},
	}

	wb := BuildWorkbook("Inventário", fieldSet(), records)
	page := pageByName(t, wb, PageEquipment)

	require.Len(t, page.Rows, 3, "raw values are distinct group keys")
}

func TestBuildWorkbook_AlwaysCarriesInventoryAndMetrics(t *testing.T) {
	wb := BuildWorkbook("Inventário", fieldSet(), nil)

	require.Len(t, wb.Pages, 2)
	assert.Equal(t, PageInventory, wb.Pages[0].Name)
	assert.Equal(t, PageMetrics, wb.Pages[1].Name)
}
