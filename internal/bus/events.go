package bus

// ScrollerEvent reports a change of a workspace layout record.
type ScrollerEvent struct {
	Change    string  `json:"change"`
	Workspace string  `json:"workspace"`
	Type      string  `json:"type"`
	Mode      string  `json:"mode"`
	Insert    string  `json:"insert"`
	Reorder   string  `json:"reorder"`
	Focus     bool    `json:"focus"`
	CenterH   bool    `json:"center_horizontal"`
	CenterV   bool    `json:"center_vertical"`
	Overview  bool    `json:"overview"`
	Scale     float64 `json:"scale"`
}

// TrailEvent reports the trail counters after any trail operation.
type TrailEvent struct {
	Length       int `json:"length"`
	Active       int `json:"active"`
	ActiveLength int `json:"active_length"`
}

// WindowEvent reports a window lifecycle change.
type WindowEvent struct {
	Change    string `json:"change"`
	ID        uint64 `json:"id"`
	AppID     string `json:"app_id"`
	Title     string `json:"title"`
	Workspace string `json:"workspace"`
}

// Event is the union delivered to IPC subscribers.
type Event struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}
