package constants

const (
	//分頁
	DefaultPagingSize int = 10
	DefaultPaging     int = 1
)

const (
	// DefaultTaxRate 預設稅率 8.25%，可由 TAX_RATE 設定覆寫
	DefaultTaxRate = "0.0825"

	//購物車限制
	MaxCartItems    = 100
	MaxItemQuantity = 999

	//訂單編號前綴 ORD-<unix>-<suffix>
	OrderNumberPrefix = "ORD"

	//商品搜尋結果上限
	ProductSearchLimit = 50
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type TokenDurationHour int

const (
	AccessTokenDuration TokenDurationHour = 24
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)
