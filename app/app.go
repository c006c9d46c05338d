package app

import (
	"database/sql"

	"github.com/jmaren/surveygrid/config"
	"github.com/jmaren/surveygrid/ids"
)

type App struct {
	*sql.DB
	config.Config
	IDs ids.Generator
}
