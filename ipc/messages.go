package ipc

// Commands understood by the server.
const (
	CommandLookup   = "lookup"
	CommandComplete = "complete"
	CommandHealth   = "health"
)

// Request is one client message.
type Request struct {
	ID      string `msgpack:"id"`
	Command string `msgpack:"cmd"`
	Query   string `msgpack:"q,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
}

// Translation is one ranked lookup row.
type Translation struct {
	Source        string `msgpack:"s"`
	Target        string `msgpack:"t"`
	WordClasses   string `msgpack:"wc,omitempty"`
	SubjectLabels string `msgpack:"sl,omitempty"`
	Score         int    `msgpack:"sc"`
}

// LookupResponse answers a lookup request.
type LookupResponse struct {
	ID        string        `msgpack:"id"`
	Results   []Translation `msgpack:"r"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// CompleteResponse answers a complete request.
type CompleteResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// StatusResponse answers health requests and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
	Pair   string `msgpack:"pair,omitempty"`
	From   string `msgpack:"from,omitempty"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Error  string `msgpack:"error"`
	Status int    `msgpack:"status"`
}
