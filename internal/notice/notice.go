// Package notice holds every user-facing string of the speed test.
// Numbers are always rendered with two decimals.
package notice

import "fmt"

// Notices emitted during a run, in the order they normally occur
const (
	AlreadyRunning = "La prueba de velocidad ya está en progreso. Espera a que finalice para comenzar una nueva prueba."
	Starting       = "Comenzando la prueba de velocidad de internet..."
	LoadFailed     = "No se pudo cargar la librería de prueba de velocidad. La prueba no estará disponible."
	Unavailable    = "La librería de prueba de velocidad no está disponible. No se puede realizar la prueba."
	SelectServer   = "Obteniendo el mejor servidor disponible."
	StartDownload  = "Iniciando la prueba de descarga..."
	StartUpload    = "Iniciando la prueba de subida..."
	Copied         = "Resultados copiados al portapapeles"
	CopyFailed     = "No se pudieron copiar los resultados al portapapeles"
	Finished       = "La prueba de velocidad ha finalizado."
	SettingsSaved  = "Configuración guardada"
)

// Host surface labels
const (
	CommandDescription = "Comienza la prueba de velocidad de internet."
	CommandCategory    = "prueba de velocidad de internet"
	SettingsTitle      = "configuración de prueba de velocidad de internet"
	FeedbackSoundLabel = "Activar sonido de retroalimentación durante la prueba"
	ResultsWindowLabel = "Mostrar resultados en un cuadro de texto al finalizar la prueba"
	ResultsTitle       = "Resultados de la prueba de velocidad"
	CloseButton        = "Cerrar"
	SaveButton         = "Guardar"
)

// Download is the spoken download result
func Download(mbps float64) string {
	return fmt.Sprintf("Velocidad de descarga: %.2f Mbps", mbps)
}

// Upload is the spoken upload result
func Upload(mbps float64) string {
	return fmt.Sprintf("Velocidad de subida: %.2f Mbps", mbps)
}

// UnexpectedError reports a recovered measurement failure
func UnexpectedError(detail string) string {
	return fmt.Sprintf("Un error inesperado ocurrió: %s", detail)
}

// ClipboardText is the single-line summary written to the clipboard
func ClipboardText(downloadMbps, uploadMbps float64) string {
	return fmt.Sprintf("Velocidad de descarga: %.2f Mbps. Velocidad de subida: %.2f Mbps.", downloadMbps, uploadMbps)
}

// WindowText is the multi-line body of the results window
func WindowText(downloadMbps, uploadMbps float64) string {
	return Download(downloadMbps) + "\n" + Upload(uploadMbps)
}
