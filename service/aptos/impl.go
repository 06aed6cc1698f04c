package aptos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/log"
	"github.com/rebooked/goapi/domain"
)

const (
	userTransactionType      = "user_transaction"
	entryFunctionPayloadType = "entry_function_payload"
)

type client struct {
	client   http.Client
	endpoint string
	timeout  time.Duration
}

func NewClient(cfg *ClientCfg) Client {
	return &client{
		client:   cfg.HttpClient,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		timeout:  cfg.Timeout,
	}
}

func (c *client) View(ctx bCtx.Ctx, req *ViewRequest) ([]json.RawMessage, error) {
	url := fmt.Sprintf("%s/v1/view", c.endpoint)

	if req.TypeArguments == nil {
		req.TypeArguments = []string{}
	}
	if req.Arguments == nil {
		req.Arguments = []interface{}{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"function": req.Function,
			"err":      err,
		}).Error("marshal view request failed")
		return nil, err
	}

	resp, err := c.do(ctx, "POST", url, body)
	if err != nil {
		return nil, err
	}

	var values []json.RawMessage
	if err := json.Unmarshal(resp, &values); err != nil {
		ctx.WithFields(log.Fields{
			"function": req.Function,
			"err":      err,
		}).Error("decode view response failed")
		return nil, domain.ErrUnexpectedShape
	}
	return values, nil
}

// rawTransaction is the node's wire format. Numeric u64 fields cross as
// strings; arguments can hold any JSON value.
type rawTransaction struct {
	Type      string `json:"type"`
	Hash      string `json:"hash"`
	Sender    string `json:"sender"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	GasUsed   string `json:"gas_used"`
	Payload   *struct {
		Type      string            `json:"type"`
		Function  string            `json:"function"`
		Arguments []json.RawMessage `json:"arguments"`
	} `json:"payload"`
}

func (c *client) GetAccountTransactions(ctx bCtx.Ctx, address domain.Address, limit int) ([]AccountTransaction, error) {
	url := fmt.Sprintf("%s/v1/accounts/%s/transactions?limit=%d", c.endpoint, address, limit)

	resp, err := c.do(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	var raws []rawTransaction
	if err := json.Unmarshal(resp, &raws); err != nil {
		ctx.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("decode transactions failed")
		return nil, domain.ErrUnexpectedShape
	}

	txs := make([]AccountTransaction, 0, len(raws))
	for _, raw := range raws {
		// pending and system transactions carry no sender or success flag
		if raw.Type != userTransactionType {
			continue
		}
		tx, err := toAccountTransaction(raw)
		if err != nil {
			ctx.WithFields(log.Fields{
				"hash": raw.Hash,
				"err":  err,
			}).Warn("malformed transaction dropped")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// toAccountTransaction flattens one wire transaction. A garbled numeric
// field drops the item, never the whole page.
func toAccountTransaction(raw rawTransaction) (AccountTransaction, error) {
	timestamp, err := parseU64(raw.Timestamp)
	if err != nil {
		return AccountTransaction{}, err
	}
	version, err := parseU64(raw.Version)
	if err != nil {
		return AccountTransaction{}, err
	}
	gasUsed, err := parseU64(raw.GasUsed)
	if err != nil {
		return AccountTransaction{}, err
	}

	tx := AccountTransaction{
		Hash:      domain.TxHash(raw.Hash),
		Sender:    domain.Address(raw.Sender),
		Success:   raw.Success,
		Timestamp: int64(timestamp / 1_000_000), // microseconds to seconds
		Version:   version,
		GasUsed:   gasUsed,
	}
	if raw.Payload != nil && raw.Payload.Type == entryFunctionPayloadType {
		tx.Function = raw.Payload.Function
		tx.Arguments = rawsToStrings(raw.Payload.Arguments)
	}
	return tx, nil
}

func (c *client) do(ctx bCtx.Ctx, method, url string, body []byte) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return data, nil
}

func parseU64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("parse u64 %q: %w", s, domain.ErrUnexpectedShape)
	}
	return v, nil
}

// rawsToStrings flattens positional arguments: JSON strings unquote, every
// other value keeps its compact encoding
func rawsToStrings(raws []json.RawMessage) []string {
	args := make([]string, 0, len(raws))
	for _, raw := range raws {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			args = append(args, s)
		} else {
			args = append(args, string(raw))
		}
	}
	return args
}
