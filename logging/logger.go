// logging/logger.go
package logging

import (
	"io"
	"log"
	"os"
)

// LogPath es el archivo donde escribe Init.
const LogPath = "/tmp/fancy-shuffle.log"

var (
	// Log es nuestro logger global que usaremos en toda la aplicación.
	// Hasta que se llama a Init descarta todo, así los paquetes y los tests
	// pueden loguear sin preparar nada.
	Log = log.New(io.Discard, "fancy-shuffle: ", log.LstdFlags|log.Lshortfile)
)

func Init() (*os.File, error) {
	return InitFile(LogPath)
}

// InitFile abre (o crea) el archivo de log indicado y redirige Log hacia él.
func InitFile(path string) (*os.File, error) {
	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
	if err != nil {
		return nil, err
	}

	Log.SetOutput(logFile)
	Log.Println("Logging system initialized.")

	return logFile, nil
}
