package conf

// Bootstrap is the full server configuration scanned from the yaml file.
type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Auth     *Auth     `json:"auth"`
	Engine   *Engine   `json:"engine"`
	Baseline *Baseline `json:"baseline"`
	Log      *Log      `json:"log"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Data struct {
	Database *Database `json:"database"`
}

// Database selects the sql driver: "postgres" or "sqlite".
type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Auth struct {
	JwtKey string `json:"jwt_key"`
}

// Engine configures the scenario interpreter.
type Engine struct {
	Llm     *LLM    `json:"llm"`
	Limits  *Limits `json:"limits"`
	Timeout string  `json:"timeout"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Limits struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

// Baseline configures the indicator snapshot.
type Baseline struct {
	CacheDir       string `json:"cache_dir"`
	TtlHours       int32  `json:"ttl_hours"`
	TimeoutSeconds int32  `json:"timeout_seconds"`
	Workers        int32  `json:"workers"`
	Offline        bool   `json:"offline"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
