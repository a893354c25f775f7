package locale

import "golang.org/x/text/language"

// Chrome strings per supported locale. Keys missing from a locale fall back
// to English in T.
var messages = map[language.Tag]map[string]string{
	language.English: {
		"preview.current":  "Current",
		"preview.next":     "Next",
		"preview.slide_of": "%s: Slide %d of %d",
		"preview.step_of":  " (step %d of %d)",
		"preview.end":      "End of presentation",
		"status.slide":     "Slide %d/%d",
		"status.step":      "step %d/%d",
		"status.autoplay":  "autoplay",
		"status.marker":    "marker",
		"status.presenter": "presenter",
		"drawer.title":     "Slides",
		"presenter.notes":  "Notes",
		"presenter.timing": "Seconds per slide",
		"help.title":       "Key bindings",
		"help.close":       "esc: close",
	},
	language.German: {
		"preview.current":  "Aktuell",
		"preview.next":     "Nächste",
		"preview.slide_of": "%s: Folie %d von %d",
		"preview.step_of":  " (Schritt %d von %d)",
		"preview.end":      "Ende der Präsentation",
		"status.slide":     "Folie %d/%d",
		"status.step":      "Schritt %d/%d",
		"status.autoplay":  "Autoplay",
		"status.marker":    "Marker",
		"status.presenter": "Referentenansicht",
		"drawer.title":     "Folien",
		"presenter.notes":  "Notizen",
		"presenter.timing": "Sekunden pro Folie",
		"help.title":       "Tastenbelegung",
		"help.close":       "esc: schließen",
	},
	language.French: {
		"preview.current":  "Actuelle",
		"preview.next":     "Suivante",
		"preview.slide_of": "%s : Diapositive %d sur %d",
		"preview.step_of":  " (étape %d sur %d)",
		"preview.end":      "Fin de la présentation",
		"status.slide":     "Diapo %d/%d",
		"status.step":      "étape %d/%d",
		"status.autoplay":  "défilement auto",
		"status.marker":    "marqueur",
		"status.presenter": "vue présentateur",
		"drawer.title":     "Diapositives",
		"presenter.notes":  "Notes",
		"presenter.timing": "Secondes par diapositive",
		"help.title":       "Raccourcis clavier",
		"help.close":       "esc : fermer",
	},
	language.Spanish: {
		"preview.current":  "Actual",
		"preview.next":     "Siguiente",
		"preview.slide_of": "%s: Diapositiva %d de %d",
		"preview.step_of":  " (paso %d de %d)",
		"preview.end":      "Fin de la presentación",
		"status.slide":     "Diapositiva %d/%d",
		"status.step":      "paso %d/%d",
		"status.autoplay":  "reproducción automática",
		"status.marker":    "marcador",
		"status.presenter": "vista del presentador",
		"drawer.title":     "Diapositivas",
		"presenter.notes":  "Notas",
		"presenter.timing": "Segundos por diapositiva",
		"help.title":       "Atajos de teclado",
		"help.close":       "esc: cerrar",
	},
}
