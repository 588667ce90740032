package handler

// Request bodies for the dynamic inventory endpoints. Every one carries
// db_table: the caller names the target table and the gateway validates
// it against the allow-list.

type insertServerRequest struct {
	DBTable    string `json:"db_table"    validate:"required"`
	ServerName string `json:"server_name" validate:"required"`
	ServerIP   string `json:"server_ip"   validate:"required,ip"`
	SGBDType   string `json:"sgbd_type"   validate:"required"`
}

type versionInfoRequest struct {
	DBTable string `json:"db_table" validate:"required"`
	Version string `json:"version"  validate:"required"`
}

type serverInfoRequest struct {
	DBTable    string `json:"db_table"    validate:"required"`
	ServerName string `json:"server_name" validate:"required"`
}

type setVersionRequest struct {
	DBTable  string `json:"db_table" validate:"required"`
	Software string `json:"software" validate:"required"`
	Version  string `json:"version"  validate:"required"`
}

type setServerRequest struct {
	DBTable    string `json:"db_table"    validate:"required"`
	ServerName string `json:"server_name" validate:"required"`
	ServerIP   string `json:"server_ip"   validate:"required,ip"`
	ServerEnv  string `json:"server_env"  validate:"required"`
	IDSoftware int64  `json:"id_software" validate:"min=1"`
}

type deleteServerRequest struct {
	DBTable  string `json:"db_table"  validate:"required"`
	ServerIP string `json:"server_ip" validate:"required,ip"`
}

type setDBServerRequest struct {
	DBTable     string `json:"db_table"      validate:"required"`
	IDRefServer int64  `json:"id_ref_server" validate:"min=1"`
	DBName      string `json:"db_name"       validate:"required"`
}

type setUserDBRequest struct {
	DBTable      string `json:"db_table"       validate:"required"`
	IDRefServers int64  `json:"id_ref_servers" validate:"min=1"`
	DBUser       string `json:"dbuser"         validate:"required"`
	DBHost       string `json:"dbhost"         validate:"required"`
}
