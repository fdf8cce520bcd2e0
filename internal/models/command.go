package models

import "time"

// CommandSetLastAcknowledged asks the server to mark every alert as seen.
const CommandSetLastAcknowledged = "sla"

// Command is an outbound client-server request waiting to be sent.
type Command struct {
	CreatedAt time.Time `json:"created_at"` // время постановки в очередь
	ID        string    `json:"id"`         // UUID запроса
	Name      string    `json:"a"`          // код команды
	Sequence  int64     `json:"seq"`        // порядковый номер в очереди
	Tag       int       `json:"tag"`        // correlation id, возвращается сервером
}
