package types

const (
	REWARD_TYPE_GIFT_CARD      = "GIFT_CARD"
	REWARD_TYPE_LOCAL_CURRENCY = "LOCAL_CURRENCY"
	REWARD_TYPE_PRODUCT        = "PRODUCT"
	REWARD_TYPE_CRYPTO         = "CRYPTO"
	REWARD_TYPE_NONE           = "NONE"
)

const (
	REWARD_METHOD_ALL        = "ALL"
	REWARD_METHOD_DRAW       = "DRAW"
	REWARD_METHOD_FIRST_COME = "FIRST_COME"
)

const (
	REWARD_DELIVERY_SMS    = "SMS"
	REWARD_DELIVERY_WALLET = "WALLET"
	REWARD_DELIVERY_EMAIL  = "EMAIL"
)

const (
	CRYPTO_NETWORK_TRC20 = "TRC20"
	CRYPTO_NETWORK_ERC20 = "ERC20"
)

type RewardConfig struct {
	Type       string      `bson:"type" json:"type"`
	Method     string      `bson:"method" json:"method"`
	Quantity   int         `bson:"quantity" json:"quantity"`
	Amount     string      `bson:"amount" json:"amount"`
	DrawDate   string      `bson:"drawDate,omitempty" json:"drawDate,omitempty"`
	Delivery   string      `bson:"delivery" json:"delivery"`
	CryptoInfo *CryptoInfo `bson:"cryptoInfo,omitempty" json:"cryptoInfo,omitempty"`
}

type CryptoInfo struct {
	Currency string `bson:"currency" json:"currency"`
	Network  string `bson:"network" json:"network"`
}
