package client

import (
	"context"
	"net/http"
)

// CurrentUser returns the authenticated user's row, creating it on the
// backend on first contact. The response is not cached: callers use it to
// establish identity, not as query data.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAccounts returns all of the authenticated user's accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	return cachedFetch(ctx, c, listKey(tagAccounts), func() ([]Account, error) {
		var envelope dataEnvelope[[]Account]
		if err := c.do(ctx, http.MethodGet, "/accounts", nil, nil, &envelope); err != nil {
			return nil, err
		}
		return envelope.Data, nil
	})
}

// GetAccount returns one account by id.
func (c *Client) GetAccount(ctx context.Context, id string) (*Account, error) {
	return cachedFetch(ctx, c, itemKey(tagAccounts, id), func() (*Account, error) {
		var envelope dataEnvelope[*Account]
		if err := c.do(ctx, http.MethodGet, "/accounts/"+id, nil, nil, &envelope); err != nil {
			return nil, err
		}
		return envelope.Data, nil
	})
}

// CreateAccount creates an account and invalidates cached account queries.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	var envelope dataEnvelope[*Account]
	if err := c.do(ctx, http.MethodPost, "/accounts", nil, req, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagAccounts)
	return envelope.Data, nil
}

// UpdateAccount partially updates an account and invalidates cached account queries.
func (c *Client) UpdateAccount(ctx context.Context, id string, req UpdateAccountRequest) (*Account, error) {
	var envelope dataEnvelope[*Account]
	if err := c.do(ctx, http.MethodPatch, "/accounts/"+id, nil, req, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagAccounts)
	return envelope.Data, nil
}

// DeleteAccount deletes an account, returning the deleted row. The backend
// cascades the delete to the account's transactions, so both entities are
// invalidated.
func (c *Client) DeleteAccount(ctx context.Context, id string) (*Account, error) {
	var envelope dataEnvelope[*Account]
	if err := c.do(ctx, http.MethodDelete, "/accounts/"+id, nil, nil, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagAccounts, tagTransactions)
	return envelope.Data, nil
}

// ListCategories returns all of the authenticated user's categories,
// ordered by name.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	return cachedFetch(ctx, c, listKey(tagCategories), func() ([]Category, error) {
		var envelope dataEnvelope[[]Category]
		if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &envelope); err != nil {
			return nil, err
		}
		return envelope.Data, nil
	})
}

// GetCategory returns one category by id.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	return cachedFetch(ctx, c, itemKey(tagCategories, id), func() (*Category, error) {
		var envelope dataEnvelope[*Category]
		if err := c.do(ctx, http.MethodGet, "/categories/"+id, nil, nil, &envelope); err != nil {
			return nil, err
		}
		return envelope.Data, nil
	})
}

// CreateCategory creates a category. Transactions render their category
// inline, so cached transaction queries are invalidated alongside categories.
func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	var envelope dataEnvelope[*Category]
	if err := c.do(ctx, http.MethodPost, "/categories", nil, req, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagCategories, tagTransactions)
	return envelope.Data, nil
}

// UpdateCategory partially updates a category.
func (c *Client) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error) {
	var envelope dataEnvelope[*Category]
	if err := c.do(ctx, http.MethodPatch, "/categories/"+id, nil, req, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagCategories, tagTransactions)
	return envelope.Data, nil
}

// DeleteCategory deletes a category, returning the deleted row. Transactions
// referencing it keep existing with a cleared category, so their cached
// queries are invalidated too.
func (c *Client) DeleteCategory(ctx context.Context, id string) (*Category, error) {
	var envelope dataEnvelope[*Category]
	if err := c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagCategories, tagTransactions)
	return envelope.Data, nil
}

// ListTransactions returns the authenticated user's transactions matching
// the filter. Distinct filters are cached independently.
func (c *Client) ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	return cachedFetch(ctx, c, transactionsKey(filter), func() ([]Transaction, error) {
		var envelope dataEnvelope[[]Transaction]
		if err := c.do(ctx, http.MethodGet, "/transactions", filter.values(), nil, &envelope); err != nil {
			return nil, err
		}
		return envelope.Data, nil
	})
}

// GetTransaction returns one transaction by id.
func (c *Client) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	return cachedFetch(ctx, c, itemKey(tagTransactions, id), func() (*Transaction, error) {
		var envelope dataEnvelope[*Transaction]
		if err := c.do(ctx, http.MethodGet, "/transactions/"+id, nil, nil, &envelope); err != nil {
			return nil, err
		}
		return envelope.Data, nil
	})
}

// CreateTransaction creates a transaction. Account-derived views change with
// every transaction write, so accounts are invalidated alongside transactions.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*Transaction, error) {
	var envelope dataEnvelope[*Transaction]
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagTransactions, tagAccounts)
	return envelope.Data, nil
}

// UpdateTransaction partially updates a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, req UpdateTransactionRequest) (*Transaction, error) {
	var envelope dataEnvelope[*Transaction]
	if err := c.do(ctx, http.MethodPatch, "/transactions/"+id, nil, req, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagTransactions, tagAccounts)
	return envelope.Data, nil
}

// DeleteTransaction deletes a transaction, returning the deleted row.
func (c *Client) DeleteTransaction(ctx context.Context, id string) (*Transaction, error) {
	var envelope dataEnvelope[*Transaction]
	if err := c.do(ctx, http.MethodDelete, "/transactions/"+id, nil, nil, &envelope); err != nil {
		return nil, err
	}
	c.invalidate(tagTransactions, tagAccounts)
	return envelope.Data, nil
}
