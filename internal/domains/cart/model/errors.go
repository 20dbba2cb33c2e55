package model

import "errors"

const ErrCodeCartItemNotFound = "CART_ITEM_NOT_FOUND"

var ErrCartItemNotFound = errors.New("cart item not found")
