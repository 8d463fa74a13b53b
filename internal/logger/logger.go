package logger

import (
	"encoding/json"
	"log"
	"os"
)

func Init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)
	Info("logger initialized", nil)
}

func line(level, msg string, fields map[string]any) string {
	entry := map[string]any{
		"level": level,
		"msg":   msg,
	}
	if len(fields) > 0 {
		entry["fields"] = fields
	}
	out, err := json.Marshal(entry)
	if err != nil {
		return `{"level":"ERROR","msg":"logger: unmarshalable fields"}`
	}
	return string(out)
}

func Info(msg string, fields map[string]any) {
	log.Print(line("INFO", msg, fields))
}

func Warn(msg string, fields map[string]any) {
	log.Print(line("WARN", msg, fields))
}

func Error(msg string, fields map[string]any) {
	log.Print(line("ERROR", msg, fields))
}

func Fatal(msg string, fields map[string]any) {
	log.Print(line("FATAL", msg, fields))
	os.Exit(1)
}
