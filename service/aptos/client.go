package aptos

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/domain"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

// ViewRequest is the body of a fullnode view function call
type ViewRequest struct {
	Function      string        `json:"function"`
	TypeArguments []string      `json:"type_arguments"`
	Arguments     []interface{} `json:"arguments"`
}

// AccountTransaction is one transaction from the account history endpoint,
// flattened to the fields the marketplace feed needs. Timestamp is in epoch
// seconds (the node reports microseconds).
type AccountTransaction struct {
	Hash      domain.TxHash
	Sender    domain.Address
	Success   bool
	Timestamp int64
	Version   uint64
	GasUsed   uint64
	// Function is empty for anything but entry function payloads
	Function  string
	Arguments []string
}

type Client interface {
	View(c bCtx.Ctx, req *ViewRequest) ([]json.RawMessage, error)
	GetAccountTransactions(c bCtx.Ctx, address domain.Address, limit int) ([]AccountTransaction, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Endpoint   string
	Timeout    time.Duration
}
