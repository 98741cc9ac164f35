package config

import "time"

type Config struct {
	// General configuration
	Env string `yaml:"env" mapstructure:"env" validate:"required,oneof=dev staging prod"`
	Log Log    `yaml:"log" mapstructure:"log" validate:"required"`
	App App    `yaml:"app" mapstructure:"app" validate:"required"`

	// Infrastructure components
	Sqlite      Sqlite      `yaml:"sqlite" mapstructure:"sqlite" validate:"required"`
	Objectstore Objectstore `yaml:"objectstore" mapstructure:"objectstore" validate:"required"`
}

type App struct {
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port" validate:"required,gte=1,lte=65535"`
	// JobBuffer is the capacity of the background job queue.
	JobBuffer int `yaml:"jobBuffer" mapstructure:"jobBuffer" validate:"required,gte=1"`
	// SnapshotInterval is how often active transfer progress is flushed to storage.
	SnapshotInterval time.Duration `yaml:"snapshotInterval" mapstructure:"snapshotInterval" validate:"required,gt=0"`
}

type Log struct {
	Level     string `yaml:"level" mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format    string `yaml:"format" mapstructure:"format" validate:"oneof=json text"`
	AddSource bool   `yaml:"addSource" mapstructure:"addSource"`
}

type Sqlite struct {
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
}

type Objectstore struct {
	Type  string     `yaml:"type" mapstructure:"type" validate:"required,oneof=local storj"`
	Local LocalStore `yaml:"local" mapstructure:"local"`
	Storj StorjStore `yaml:"storj" mapstructure:"storj"`
}

type LocalStore struct {
	Root string `yaml:"root" mapstructure:"root"`
}

type StorjStore struct {
	Bucket      string `yaml:"bucket" mapstructure:"bucket"`
	AccessGrant string `yaml:"accessGrant" mapstructure:"accessGrant"`
}
