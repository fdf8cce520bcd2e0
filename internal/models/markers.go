package models

// SeenMarkers are the last-seen boundaries supplied by the catch-up replay.
type SeenMarkers struct {
	LastSeenNumber Handle `json:"lsn"` // LastSeenNumber последнее просмотренное уведомление
	FirstSeqNumber Handle `json:"fsn"` // FirstSeqNumber первый sequence number выгрузки
	LastTimeDelta  int64  `json:"ltd"` // LastTimeDelta секунд с момента последнего просмотра
}
