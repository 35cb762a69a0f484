package appointment

// DefaultService and DefaultProfessional pre-fill the create form.
const (
	DefaultService      = "Clínica Geral"
	DefaultProfessional = "Clínica Geral"
)

// Services is the clinic's offered service catalog. The gateway does not
// enforce membership, the list only drives the form's select options.
var Services = []string{
	"Odontopediatria (1ª vez)",
	"Odontopediatria (Retorno)",
	"Pacientes Especiais (1ª vez)",
	"Pacientes Especiais (Retorno)",
	"Implante",
	"Clínica Geral",
	"Ortodontia",
	"Fonoaudióloga miofuncional",
}

// Professionals lists the schedulable provider groups.
var Professionals = []string{
	"Clínica Geral",
	"Ortodontia",
	"Dra. Débora / Dr. Sidney",
}
