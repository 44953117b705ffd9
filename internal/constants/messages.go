package constants

// User-facing notification texts
const (
	MsgSaveFailed        = "Speichern am Server fehlgeschlagen."
	MsgLoadFailed        = "Dienstplan konnte nicht vom Server geladen werden."
	MsgHolidayFetch      = "Feiertage konnten nicht geladen werden."
	MsgHolidayLocked     = "Automatischer Feiertag kann nicht bearbeitet werden."
	MsgHolidayNoClear    = "Automatischer Feiertag kann nicht gelöscht werden."
	MsgHolidayKept       = "Feiertage bleiben unverändert."
	MsgConflictDetected  = "Konflikt erkannt: Mehrfachbelegung"
	MsgMultipleAssigned  = "Mehrfachbelegung erkannt"
	MsgImportDone        = "Import abgeschlossen"
	MsgCalendarUpdated   = "Kalenderbasis aktualisiert."
	MsgPreviousOverwrite = "Vorheriger Eintrag überschrieben"
	MsgCellCopied        = "Zelle kopiert"
	MsgRowCopied         = "Zeile kopiert"
	MsgWeekCopied        = "Woche kopiert"
	MsgImportFailed      = "Import fehlgeschlagen"
	MsgUnknownFormat     = "Unbekanntes Dateiformat"
	MsgCSVExported       = "CSV exportiert"
	MsgXLSXExported      = "Excel exportiert"
)
