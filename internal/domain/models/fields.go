package models

// FieldKey identifies one attribute of a Record collected by the wizard.
type FieldKey string

const (
	FieldEquipmentType FieldKey = "equipmentType"
	FieldPatrimony     FieldKey = "patrimony"
	FieldLocation      FieldKey = "location"
	FieldManufacturer  FieldKey = "manufacturer"
	FieldModel         FieldKey = "model"
	FieldUser          FieldKey = "user"
)

// TimestampLabel is the column label used for the creation timestamp on
// exported artifacts. It is not a wizard field.
const TimestampLabel = "Data"

// CreatedAtImportKeys are the candidate key spellings, in priority order,
// under which a source timestamp is looked up during lenient JSON import.
var CreatedAtImportKeys = []string{"createdAt", "criadoEm"}

// Field describes one wizard-collected attribute: the canonical JSON key,
// the fixed column label used on export, the prompt shown while stepping,
// the uppercase substrings that identify its column in a foreign CSV header,
// and the candidate key spellings tried, in order, during lenient JSON
// import. The candidate list is an explicit lookup table; import never
// guesses beyond it.
type Field struct {
	Key          FieldKey
	Label        string
	Prompt       string
	HeaderTokens []string
	ImportKeys   []string
}

// FieldSet is the ordered list of fields the wizard walks, plus the draft
// defaults. The model field is optional: both historical layouts of the tool
// (with and without model) are expressed through the same FieldSet.
type FieldSet struct {
	Fields              []Field
	DefaultManufacturer string
}

// NewFieldSet builds the fixed wizard field order: equipment type,
// patrimony, location, manufacturer, (model), user.
func NewFieldSet(includeModel bool, defaultManufacturer string) FieldSet {
	fields := []Field{
		{
			Key:          FieldEquipmentType,
			Label:        "Equipamento",
			Prompt:       "Tipo do equipamento",
			HeaderTokens: []string{"EQUIP"},
			ImportKeys:   []string{"equipmentType", "equipamento", "EQUIPAMENTO"},
		},
		{
			Key:          FieldPatrimony,
			Label:        "Patrimônio",
			Prompt:       "Número do patrimônio",
			HeaderTokens: []string{"PATRIM"},
			ImportKeys:   []string{"patrimony", "patrimonio", "PATRIMONIO", "PATRIMÔNIO"},
		},
		{
			Key:          FieldLocation,
			Label:        "Local",
			Prompt:       "Local do equipamento",
			HeaderTokens: []string{"LOCAL"},
			ImportKeys:   []string{"location", "local", "LOCAL"},
		},
		{
			Key:          FieldManufacturer,
			Label:        "Fabricante",
			Prompt:       "Fabricante",
			HeaderTokens: []string{"FABRIC"},
			ImportKeys:   []string{"manufacturer", "fabricante", "FABRICANTE"},
		},
	}

	if includeModel {
		fields = append(fields, Field{
			Key:          FieldModel,
			Label:        "Modelo",
			Prompt:       "Modelo",
			HeaderTokens: []string{"MODELO"},
			ImportKeys:   []string{"model", "modelo", "MODELO"},
		})
	}

	fields = append(fields, Field{
		Key:          FieldUser,
		Label:        "Usuário",
		Prompt:       "Usuário responsável",
		HeaderTokens: []string{"USUARIO", "USUÁRIO"},
		ImportKeys:   []string{"user", "usuario", "USUARIO", "USUÁRIO"},
	})

	return FieldSet{Fields: fields, DefaultManufacturer: defaultManufacturer}
}

// Len returns the number of wizard fields.
func (fs FieldSet) Len() int { return len(fs.Fields) }

// At returns the field at position i. Callers are expected to keep i within
// range; the wizard addresses fields modulo Len.
func (fs FieldSet) At(i int) Field { return fs.Fields[i] }

// Labels returns the export column labels in field order.
func (fs FieldSet) Labels() []string {
	labels := make([]string, len(fs.Fields))
	for i, f := range fs.Fields {
		labels[i] = f.Label
	}
	return labels
}

// EmptyDraft returns the reset draft: all fields empty except the
// manufacturer, which starts at the configured default.
func (fs FieldSet) EmptyDraft() Draft {
	return Draft{Manufacturer: fs.DefaultManufacturer}
}

// Value reads the draft slot addressed by key.
func (d Draft) Value(key FieldKey) string {
	switch key {
	case FieldEquipmentType:
		return d.EquipmentType
	case FieldPatrimony:
		return d.Patrimony
	case FieldLocation:
		return d.Location
	case FieldManufacturer:
		return d.Manufacturer
	case FieldModel:
		return d.Model
	case FieldUser:
		return d.User
	}
	return ""
}

// WithValue returns a copy of the draft with the slot addressed by key set
// to value. Unknown keys return the draft unchanged.
func (d Draft) WithValue(key FieldKey, value string) Draft {
	switch key {
	case FieldEquipmentType:
		d.EquipmentType = value
	case FieldPatrimony:
		d.Patrimony = value
	case FieldLocation:
		d.Location = value
	case FieldManufacturer:
		d.Manufacturer = value
	case FieldModel:
		d.Model = value
	case FieldUser:
		d.User = value
	}
	return d
}

// FieldValue reads the record attribute addressed by key.
func (r Record) FieldValue(key FieldKey) string {
	switch key {
	case FieldEquipmentType:
		return r.EquipmentType
	case FieldPatrimony:
		return r.Patrimony
	case FieldLocation:
		return r.Location
	case FieldManufacturer:
		return r.Manufacturer
	case FieldModel:
		return r.Model
	case FieldUser:
		return r.User
	}
	return ""
}
