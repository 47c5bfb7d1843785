package cache

import "fmt"

func candlesKey(prefix, symbol, timeframe, exchange string) string {
	return fmt.Sprintf("%scandles:%s:%s:%s", prefix, symbol, timeframe, exchange)
}

func tickerKey(prefix, symbol, exchange string) string {
	return fmt.Sprintf("%sticker:%s:%s", prefix, symbol, exchange)
}

func orderBookKey(prefix, symbol, exchange string) string {
	return fmt.Sprintf("%sorderbook:%s:%s", prefix, symbol, exchange)
}

func tradesKey(prefix, symbol, exchange string) string {
	return fmt.Sprintf("%strades:%s:%s", prefix, symbol, exchange)
}
