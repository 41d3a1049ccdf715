package types

// Event types for the AMM module
const (
	EventTypePairCreated      = "pair_created"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeSwapExecuted     = "swap_executed"
	EventTypeFeesUpdated      = "fees_updated"
	EventTypeFeesCollected    = "fees_collected"
)

// Event attribute keys
const (
	AttributeKeyPoolID           = "pool_id"
	AttributeKeyTokenA           = "token_a"
	AttributeKeyTokenB           = "token_b"
	AttributeKeyCreator          = "creator"
	AttributeKeyProvider         = "provider"
	AttributeKeyTrader           = "trader"
	AttributeKeyAmountA          = "amount_a"
	AttributeKeyAmountB          = "amount_b"
	AttributeKeyLiquidityMinted  = "liquidity_minted"
	AttributeKeyLiquidityBurned  = "liquidity_burned"
	AttributeKeyTokenIn          = "token_in"
	AttributeKeyTokenOut         = "token_out"
	AttributeKeyAmountIn         = "amount_in"
	AttributeKeyAmountOut        = "amount_out"
	AttributeKeyFeeAmount        = "fee_amount"
	AttributeKeyFeeRateBps       = "fee_rate_bps"
	AttributeKeyProtocolFeeBps   = "protocol_fee_bps"
	AttributeKeyProtocolPortionA = "protocol_portion_a"
	AttributeKeyProtocolPortionB = "protocol_portion_b"
)
