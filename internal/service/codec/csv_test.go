package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-backend/internal/domain/models"
)

func fieldSet() models.FieldSet { return models.NewFieldSet(false, "Dell") }

func sampleRecords() []models.Record {
	return []models.Record{
		{EquipmentType: "Notebook", Patrimony: "1001", Location: "TI", Manufacturer: "Dell", User: "Ana", CreatedAt: 1721930000000},
		{EquipmentType: "Mouse", Patrimony: "1002", Location: "TI", Manufacturer: "Logitech", User: "Bruno", CreatedAt: 1721930001000},
		{EquipmentType: "Mouse", Patrimony: "1003", Location: "RH", Manufacturer: "Logitech", User: "Ana", CreatedAt: 1721930002000},
	}
}

func TestEncodeCSV_Golden(t *testing.T) {
	out := EncodeCSV(fieldSet(), sampleRecords())

	g := goldie.New(t)
	g.Assert(t, "csv_export", []byte(out))
}

func TestEncodeCSV_QuotesAndDoubling(t *testing.T) {
	records := []models.Record{{
		EquipmentType: `Monitor 24"`,
		Location:      "Sala 1, Bloco B",
	}}

	out := EncodeCSV(fieldSet(), records)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[1], `"Monitor 24"""`, "internal quotes are doubled")
	assert.Contains(t, lines[1], `"Sala 1, Bloco B"`, "commas stay inside the quoted cell")
}

func TestEncodeCSV_NoTrailingNewline(t *testing.T) {
	out := EncodeCSV(fieldSet(), sampleRecords())
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestDecodeCSV_RoundTripPreservesFields(t *testing.T) {
	fs := fieldSet()
	now := time.UnixMilli(1725000000000)

	decoded, err := DecodeCSV(fs, EncodeCSV(fs, sampleRecords()), now)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	for i, rec := range decoded {
		want := sampleRecords()[i]
		assert.Equal(t, want.EquipmentType, rec.EquipmentType)
		assert.Equal(t, want.Patrimony, rec.Patrimony)
		assert.Equal(t, want.Location, rec.Location)
		assert.Equal(t, want.Manufacturer, rec.Manufacturer)
		assert.Equal(t, want.User, rec.User)
		assert.Equal(t, now.UnixMilli(), rec.CreatedAt, "import re-stamps the timestamp")
	}
}

func TestDecodeCSV_ForeignHeaderBySubstring(t *testing.T) {
	input := strings.Join([]string{
		"Tipo de Equipamento,Nº Patrimônio,Localização,Fabricante,Usuário Responsável",
		"Teclado,555,TI,Dell,Carla",
	}, "\n")

	decoded, err := DecodeCSV(fieldSet(), input, time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	assert.Equal(t, "Teclado", decoded[0].EquipmentType)
	assert.Equal(t, "555", decoded[0].Patrimony)
	assert.Equal(t, "TI", decoded[0].Location)
	assert.Equal(t, "Dell", decoded[0].Manufacturer)
	assert.Equal(t, "Carla", decoded[0].User)
}

func TestDecodeCSV_LowercaseAndAccentedHeaders(t *testing.T) {
	input := "equipamento,patrimonio,local,fabricante,usuário\nMouse,9,RH,Logitech,Davi"

	decoded, err := DecodeCSV(fieldSet(), input, time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Davi", decoded[0].User)
}

func TestDecodeCSV_QuotedCommaStaysInField(t *testing.T) {
	input := "Equipamento,Patrimônio,Local,Fabricante,Usuário\n" +
		`"Impressora, colorida",77,"Sala 2, Anexo",HP,Eva`

	decoded, err := DecodeCSV(fieldSet(), input, time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Impressora, colorida", decoded[0].EquipmentType)
	assert.Equal(t, "Sala 2, Anexo", decoded[0].Location)
}

func TestDecodeCSV_DoubledQuotesAreNotUnescaped(t *testing.T) {
	input := "Equipamento,Patrimônio,Local,Fabricante,Usuário\n" +
		`"Monitor 24""",1,TI,LG,Ana`

	decoded, err := DecodeCSV(fieldSet(), input, time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	// Boundary quotes are stripped, the doubled pair survives literally.
	assert.Equal(t, `Monitor 24""`, decoded[0].EquipmentType)
}

func TestDecodeCSV_MissingColumnsYieldEmptyFields(t *testing.T) {
	input := "Equipamento,Usuário\nNotebook,Ana"

	decoded, err := DecodeCSV(fieldSet(), input, time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Empty(t, decoded[0].Patrimony)
	assert.Empty(t, decoded[0].Location)
	assert.Empty(t, decoded[0].Manufacturer)
}

func TestDecodeCSV_BlankLinesAndCRLFTolerated(t *testing.T) {
	input := "Equipamento,Patrimônio,Local,Fabricante,Usuário\r\n\r\nMouse,1,TI,Dell,Ana\r\n\r\n"

	decoded, err := DecodeCSV(fieldSet(), input, time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Mouse", decoded[0].EquipmentType)
}

func TestDecodeCSV_HeaderOnlyIsErrNoRows(t *testing.T) {
	_, err := DecodeCSV(fieldSet(), "Equipamento,Patrimônio,Local,Fabricante,Usuário\n", time.Now())
	require.ErrorIs(t, err, ErrNoRows)
}

func TestDecodeCSV_EmptyInputIsErrNoRows(t *testing.T) {
	_, err := DecodeCSV(fieldSet(), "\n\n", time.Now())
	require.ErrorIs(t, err, ErrNoRows)
}
