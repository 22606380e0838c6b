package offset

// DefaultWindowsZone is used for offsets outside the table
const DefaultWindowsZone = "GMT Standard Time"

// windowsZones maps Min..Max to the tzutil identifier, indexed by offset-Min
var windowsZones = [...]string{
	"Dateline Standard Time",
	"UTC-11",
	"Hawaiian Standard Time",
	"Alaskan Standard Time",
	"Pacific Standard Time",
	"Mountain Standard Time",
	"Central Standard Time",
	"Eastern Standard Time",
	"Atlantic Standard Time",
	"SA Eastern Standard Time",
	"UTC-02",
	"Azores Standard Time",
	"GMT Standard Time",
	"W. Central Africa Standard Time",
	"South Africa Standard Time",
	"Russian Standard Time",
	"Arabian Standard Time",
	"West Asia Standard Time",
	"Central Asia Standard Time",
	"SE Asia Standard Time",
	"China Standard Time",
	"Tokyo Standard Time",
	"AUS Eastern Standard Time",
	"Central Pacific Standard Time",
	"New Zealand Standard Time",
}

// WindowsZone returns the Windows time zone identifier for an offset
func WindowsZone(o Offset) string {
	if !o.Valid() {
		return DefaultWindowsZone
	}
	return windowsZones[o-Min]
}
