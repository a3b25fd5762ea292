package client

import (
	"net/url"
	"strings"
)

// Entity tags. Every cache key starts with its entity tag, so a mutation can
// invalidate all list and item queries for an entity with one prefix.
const (
	tagUsers        = "users"
	tagAccounts     = "accounts"
	tagCategories   = "categories"
	tagTransactions = "transactions"
)

func listKey(tag string) string {
	return tag
}

func itemKey(tag, id string) string {
	return tag + "/" + id
}

// transactionsKey builds the composite key for a filtered transaction list.
// url.Values.Encode sorts parameters, so equal filters always share a key.
func transactionsKey(filter TransactionFilter) string {
	query := filter.values()
	if len(query) == 0 {
		return tagTransactions
	}
	return tagTransactions + "?" + query.Encode()
}

// keyTag returns the entity tag a cache key belongs to.
func keyTag(key string) string {
	if i := strings.IndexAny(key, "/?"); i >= 0 {
		return key[:i]
	}
	return key
}

// values converts the filter to query parameters, omitting empty fields.
func (f TransactionFilter) values() url.Values {
	query := url.Values{}
	if f.AccountID != "" {
		query.Set("accountId", f.AccountID)
	}
	if f.CategoryID != "" {
		query.Set("categoryId", f.CategoryID)
	}
	return query
}
