package utils

type Metric struct {
	DatabaseRead        chan float64
	DatabaseWrite       chan float64
	MailSend            chan float64
	RegistrationCreated chan struct{}
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:        make(chan float64),
		DatabaseWrite:       make(chan float64),
		MailSend:            make(chan float64),
		RegistrationCreated: make(chan struct{}),
	}
}

// Non-blocking pushes; short-lived commands run without metric collectors,
// so a push with no reader is dropped instead of blocking the request path.

func (m *Metric) PushDatabaseRead(latency float64) {
	if m == nil {
		return
	}
	select {
	case m.DatabaseRead <- latency:
	default:
	}
}

func (m *Metric) PushDatabaseWrite(latency float64) {
	if m == nil {
		return
	}
	select {
	case m.DatabaseWrite <- latency:
	default:
	}
}

func (m *Metric) PushMailSend(latency float64) {
	if m == nil {
		return
	}
	select {
	case m.MailSend <- latency:
	default:
	}
}

func (m *Metric) PushRegistrationCreated() {
	if m == nil {
		return
	}
	select {
	case m.RegistrationCreated <- struct{}{}:
	default:
	}
}
