package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-backend/internal/domain/models"
)

func fieldSetNoModel() models.FieldSet  { return models.NewFieldSet(false, "Dell") }
func fieldSetWithModel() models.FieldSet { return models.NewFieldSet(true, "Dell") }

func TestSubmit_WalkThroughAllFieldsFinalizes(t *testing.T) {
	fs := fieldSetNoModel()
	st := NewState(fs)
	now := time.UnixMilli(1721930000000).UTC()

	values := []string{"Notebook", "123", "TI", "Dell", "Ana"}
	require.Equal(t, fs.Len(), len(values))

	var rec *models.Record
	for i, v := range values {
		st, rec = Submit(fs, st, v, now)
		if i < len(values)-1 {
			require.Nil(t, rec, "no record before the last field")
			assert.Equal(t, i+1, st.Step)
		}
	}

	require.NotNil(t, rec, "last submission finalizes")
	assert.Equal(t, "Notebook", rec.EquipmentType)
	assert.Equal(t, "123", rec.Patrimony)
	assert.Equal(t, "TI", rec.Location)
	assert.Equal(t, "Dell", rec.Manufacturer)
	assert.Equal(t, "Ana", rec.User)
	assert.Equal(t, int64(1721930000000), rec.CreatedAt)

	assert.Zero(t, st.Step, "wizard cycles back to the first field")
	assert.Equal(t, fs.EmptyDraft(), st.Draft, "draft resets to defaults")
}

func TestSubmit_ModelFieldPresentWhenEnabled(t *testing.T) {
	fs := fieldSetWithModel()
	st := NewState(fs)
	now := time.Now()

	var rec *models.Record
	for _, v := range []string{"Notebook", "123", "TI", "Dell", "Latitude 5420", "Ana"} {
		st, rec = Submit(fs, st, v, now)
	}

	require.NotNil(t, rec)
	assert.Equal(t, "Latitude 5420", rec.Model)
	assert.Equal(t, "Ana", rec.User)
}

func TestSubmit_StepAddressesFieldModuloCount(t *testing.T) {
	fs := fieldSetNoModel()

	// A step beyond the field count still lands on a real slot.
	st := State{Step: fs.Len() + 1, Draft: fs.EmptyDraft()}
	st, rec := Submit(fs, st, "321", time.Now())

	require.Nil(t, rec)
	assert.Equal(t, "321", st.Draft.Patrimony)
}

func TestSubmit_OverwritesDefaultManufacturer(t *testing.T) {
	fs := fieldSetNoModel()
	st := NewState(fs)
	now := time.Now()

	var rec *models.Record
	for _, v := range []string{"Monitor", "9", "RH", "", ""} {
		st, rec = Submit(fs, st, v, now)
	}

	require.NotNil(t, rec)
	assert.Empty(t, rec.Manufacturer, "submitted value wins over the draft default")
}

func TestBack_AtFirstFieldIsNoOp(t *testing.T) {
	fs := fieldSetNoModel()
	st := NewState(fs)

	st = Back(st)
	assert.Zero(t, st.Step)

	st = Back(Back(st))
	assert.Zero(t, st.Step)
}

func TestBack_StepsToPreviousField(t *testing.T) {
	fs := fieldSetNoModel()
	st := NewState(fs)

	st, _ = Submit(fs, st, "Notebook", time.Now())
	st, _ = Submit(fs, st, "123", time.Now())
	require.Equal(t, 2, st.Step)

	st = Back(st)
	assert.Equal(t, 1, st.Step)
	assert.Equal(t, "Notebook", st.Draft.EquipmentType, "draft keeps earlier values")
}

func TestQuickAdd_AllEmptyDraftIsRejected(t *testing.T) {
	fs := models.NewFieldSet(true, "")
	st := NewState(fs)

	next, rec, err := QuickAdd(fs, st, time.Now())
	require.ErrorIs(t, err, ErrEmptyDraft)
	assert.Nil(t, rec)
	assert.Equal(t, st, next, "state unchanged on rejection")
}

func TestQuickAdd_PartialDraftFinalizes(t *testing.T) {
	fs := fieldSetNoModel()
	st := NewState(fs)
	st, _ = Submit(fs, st, "Mouse", time.Now())

	now := time.UnixMilli(1721930001000).UTC()
	next, rec, err := QuickAdd(fs, st, now)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Mouse", rec.EquipmentType)
	assert.Equal(t, "Dell", rec.Manufacturer, "draft default survives quick add")
	assert.Empty(t, rec.User)
	assert.Equal(t, int64(1721930001000), rec.CreatedAt)
	assert.Zero(t, next.Step)
	assert.Equal(t, fs.EmptyDraft(), next.Draft)
}

func TestQuickAdd_DefaultManufacturerAloneCounts(t *testing.T) {
	// With a configured default the draft is never all-empty, so quick add
	// saves a manufacturer-only record. The guard checks raw emptiness.
	fs := fieldSetNoModel()
	st := NewState(fs)

	_, rec, err := QuickAdd(fs, st, time.Now())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Dell", rec.Manufacturer)
}

func TestCurrentField_FollowsStep(t *testing.T) {
	fs := fieldSetWithModel()
	st := NewState(fs)

	assert.Equal(t, models.FieldEquipmentType, CurrentField(fs, st).Key)

	st, _ = Submit(fs, st, "Notebook", time.Now())
	assert.Equal(t, models.FieldPatrimony, CurrentField(fs, st).Key)
}
