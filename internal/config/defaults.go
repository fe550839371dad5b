package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "entregas",
}

var defaultAuth = Auth{
	// dev fallback; Load warns when it is left in place
	Secret:   "CHANGE_ME_SUPER_SECRET",
	TokenTTL: 30 * 24 * time.Hour,
}

var defaultUploads = Uploads{Dir: "uploads"}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultAuth returns the default token settings.
func DefaultAuth() Auth {
	return defaultAuth
}

// DefaultKafka returns the default (disabled) kafka settings.
func DefaultKafka() Kafka {
	return Kafka{}
}

// DefaultUploads returns the default upload settings.
func DefaultUploads() Uploads {
	return defaultUploads
}
