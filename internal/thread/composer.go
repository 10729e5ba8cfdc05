package thread

import (
	"context"
	"fmt"

	"tx-mentions-bot/internal/types"

	"github.com/tmc/langchaingo/llms"
)

const composePrompt = `Write a Twitter thread about '%s' in exactly 3 tweets. The data is about a transaction on the blockchain you must ALWAYS follow the instructions provided bellow.

Requirements:
- No hashtags
- Use bullet points (•) for better readability
- Each bullet point should be on its own line
- NO markdown formatting (no backticks, no asterisks for bold)
- For technical data like addresses, use clear labels: "From:  ` + "`0x123...`" + `" not "**From**: 0x123..."
- Easy-to-read content with clear keywords and concise language
- Natural flow between tweets, the transition between tweets should be seamless
- Include a link to the block explorer with the transaction hash in the last tweet
- Each Tweet should be about the same length and try to be as concise as possible
- Twitter has character limits, so keep each tweet under 280 characters
- Use proper spacing between sentences
- Format numbers with commas for better readability (e.g., "1,234,567" not "1234567")
- Use proper units (e.g., "ETH" for Ether values)
- Keep technical details clear but concise

Be sure to use the correct block explorer link for the chain, this is the list of the most common ones:
- Ethereum: https://etherscan.io/tx/
- Base: https://basescan.org/tx/
- Polygon: https://polygonscan.com/tx/
- Arbitrum: https://arbiscan.io/tx/
- Optimism: https://optimistic.etherscan.io/tx/
- Avalanche: https://snowtrace.io/tx/
- Binance: https://bscscan.com/tx/
- BSC: https://bscscan.com/tx/
- Fantom: https://ftmscan.com/tx/
- Gnosis: https://gnosisscan.io/tx/

Format:
Return the thread as plain text with each tweet on a new line, separated by line breaks:

Tweet 1: [First tweet content]

Tweet 2: [Second tweet content]

Tweet 3: [Third tweet content with block explorer link]

Example format:
Tweet 1: There are the details of the transaction. Hash: 0x123...abc. Block: 7,985,824.

Tweet 2: • From: 0xdf8...200
• To: 0x023...5f0
• Value: 0 ETH
• Gas Used: 108,152
• Gas Price: 18.19 Gwei

Tweet 3: • Transaction Type: 2 (EIP-1559)
• Status: Success
• Block Hash: 0xa02...b8c
• View on explorer: https://sepolia.etherscan.io/tx/0x123...abc`

// Composer turns raw transaction analysis into a three-tweet thread by
// asking a model to draft it and parsing the draft.
type Composer struct {
	LLM llms.Model
}

// Compose asks the model for a "Tweet 1/2/3" draft of data and parses it.
func (c Composer) Compose(ctx context.Context, data string) (types.Thread, error) {
	prompt := fmt.Sprintf(composePrompt, data)
	out, err := llms.GenerateFromSinglePrompt(ctx, c.LLM, prompt)
	if err != nil {
		return types.Thread{}, fmt.Errorf("compose thread: %w", err)
	}
	return Parse(out), nil
}
