package codec

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-backend/internal/domain/models"
)

func TestEncodeBackup_Golden(t *testing.T) {
	out, err := EncodeBackup(sampleRecords(), time.UnixMilli(1721930003000))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "backup_export", out)
}

func TestBackup_RoundTripIsByteFaithful(t *testing.T) {
	records := sampleRecords()

	data, err := EncodeBackup(records, time.Now())
	require.NoError(t, err)

	decoded, err := DecodeBackup(data)
	require.NoError(t, err)
	assert.Equal(t, records, decoded, "all fields and timestamps survive the round trip")
}

func TestEncodeBackup_NilRecordsEncodeAsEmptyArray(t *testing.T) {
	data, err := EncodeBackup(nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rows": []`)
}

func TestDecodeBackup_MissingRowsFails(t *testing.T) {
	_, err := DecodeBackup([]byte(`{"version":1,"exportedAt":"2024-01-01T00:00:00.000Z"}`))
	require.ErrorIs(t, err, ErrMissingRows)
}

func TestDecodeBackup_RowsNotASequenceFails(t *testing.T) {
	_, err := DecodeBackup([]byte(`{"version":1,"rows":{"not":"a sequence"}}`))
	require.Error(t, err)
}

func TestDecodeBackup_UnparseableFails(t *testing.T) {
	_, err := DecodeBackup([]byte(`not json at all`))
	require.Error(t, err)
}

func TestDecodeBackup_EmptyRowsIsAllowed(t *testing.T) {
	decoded, err := DecodeBackup([]byte(`{"version":1,"rows":[]}`))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeLenient_BareArray(t *testing.T) {
	now := time.UnixMilli(1725000000000)
	payload := []byte(`[{"equipmentType":"Mouse","patrimony":"1","user":"Ana"}]`)

	decoded, err := DecodeLenient(fieldSet(), payload, now)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Mouse", decoded[0].EquipmentType)
	assert.Equal(t, "1", decoded[0].Patrimony)
	assert.Equal(t, "Ana", decoded[0].User)
	assert.Equal(t, now.UnixMilli(), decoded[0].CreatedAt, "no source timestamp, stamped with now")
}

func TestDecodeLenient_RowsAndDataEnvelopes(t *testing.T) {
	for _, payload := range []string{
		`{"rows":[{"equipamento":"Teclado"}]}`,
		`{"data":[{"equipamento":"Teclado"}]}`,
	} {
		decoded, err := DecodeLenient(fieldSet(), []byte(payload), time.Now())
		require.NoError(t, err, payload)
		require.Len(t, decoded, 1)
		assert.Equal(t, "Teclado", decoded[0].EquipmentType)
	}
}

func TestDecodeLenient_CandidateKeyPriorityOrder(t *testing.T) {
	// The canonical key outranks the Portuguese spellings when both appear.
	payload := []byte(`[{"equipmentType":"Notebook","EQUIPAMENTO":"Mouse"}]`)

	decoded, err := DecodeLenient(fieldSet(), payload, time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Notebook", decoded[0].EquipmentType)
}

func TestDecodeLenient_UppercaseAndAccentedSpellings(t *testing.T) {
	payload := []byte(`[{"EQUIPAMENTO":"Monitor","PATRIMÔNIO":"42","LOCAL":"RH","FABRICANTE":"LG","USUÁRIO":"Bia"}]`)

	decoded, err := DecodeLenient(fieldSet(), payload, time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	rec := decoded[0]
	assert.Equal(t, "Monitor", rec.EquipmentType)
	assert.Equal(t, "42", rec.Patrimony)
	assert.Equal(t, "RH", rec.Location)
	assert.Equal(t, "LG", rec.Manufacturer)
	assert.Equal(t, "Bia", rec.User)
}

func TestDecodeLenient_SourceTimestampKept(t *testing.T) {
	for _, payload := range []string{
		`[{"equipamento":"Mouse","createdAt":1721930000000}]`,
		`[{"equipamento":"Mouse","criadoEm":"1721930000000"}]`,
	} {
		decoded, err := DecodeLenient(fieldSet(), []byte(payload), time.UnixMilli(1))
		require.NoError(t, err, payload)
		require.Len(t, decoded, 1)
		assert.Equal(t, int64(1721930000000), decoded[0].CreatedAt, payload)
	}
}

func TestDecodeLenient_NonNumericTimestampRestamped(t *testing.T) {
	now := time.UnixMilli(99)
	payload := []byte(`[{"equipamento":"Mouse","createdAt":"yesterday"}]`)

	decoded, err := DecodeLenient(fieldSet(), payload, now)
	require.NoError(t, err)
	assert.Equal(t, int64(99), decoded[0].CreatedAt)
}

func TestDecodeLenient_NonStringValuesStringified(t *testing.T) {
	payload := []byte(`[{"patrimonio":12345,"equipamento":"Mouse"}]`)

	decoded, err := DecodeLenient(fieldSet(), payload, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "12345", decoded[0].Patrimony)
}

func TestDecodeLenient_UnrecognizedShapes(t *testing.T) {
	for _, payload := range []string{
		`{"items":[{"equipamento":"Mouse"}]}`,
		`"just a string"`,
		`42`,
	} {
		_, err := DecodeLenient(fieldSet(), []byte(payload), time.Now())
		require.ErrorIs(t, err, ErrUnrecognizedFormat, payload)
	}
}

func TestDecodeLenient_EmptySequenceIsErrNoRows(t *testing.T) {
	_, err := DecodeLenient(fieldSet(), []byte(`[]`), time.Now())
	require.ErrorIs(t, err, ErrNoRows)

	// Non-object elements are skipped; all skipped is still no rows.
	_, err = DecodeLenient(fieldSet(), []byte(`[1,2,"x"]`), time.Now())
	require.ErrorIs(t, err, ErrNoRows)
}

func TestDecodeLenient_UnknownKeysDefaultToEmpty(t *testing.T) {
	decoded, err := DecodeLenient(fieldSet(), []byte(`[{"serial":"abc"}]`), time.Now())
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, models.Record{CreatedAt: decoded[0].CreatedAt}, decoded[0])
}
