package models

// ModelRegistry lists every model that participates in gorm auto-migration.
// Register new models here so `--auto-migrate` picks them up.
var ModelRegistry = []interface{}{
	&WaitlistEntry{},
}
