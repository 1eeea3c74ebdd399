package proposing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/pkg/utils"
)

// normalizeFormatting corrige caixa alta, pontuação repetida e espaços sem mudar as palavras
func normalizeFormatting(text string, assetType domain.AssetType) string {
	out := regexp.MustCompile(`([!?])[!?]+`).ReplaceAllString(text, "$1")
	if assetType == domain.AssetTypeHeadline {
		out = strings.ReplaceAll(out, "!", "")
	}

	words := strings.Fields(out)
	for i, w := range words {
		if !utils.IsUpperWord(w) || utils.IsAcronym(w) {
			continue
		}
		lower := strings.ToLower(w)
		r, size := utf8.DecodeRuneInString(lower)
		words[i] = string(unicode.ToUpper(r)) + lower[size:]
	}
	return strings.Join(words, " ")
}

// isFormattingOnly aceita apenas mudanças de caixa, pontuação e espaços
func isFormattingOnly(before, after string) bool {
	return utils.NormalizeText(before) == utils.NormalizeText(after)
}

// suggestPaths deriva os caminhos de exibição do nome do grupo ou da campanha
func suggestPaths(ad domain.Ad) []string {
	source := ad.AdGroupName
	if utils.NormalizeText(source) == "" {
		source = ad.CampaignName
	}

	paths := make([]string, 0, domain.MaxPaths)
	for _, tok := range utils.Tokens(source) {
		if len(paths) == domain.MaxPaths {
			break
		}
		paths = append(paths, truncatePath(tok))
	}
	return paths
}

func shortenPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, truncatePath(p))
		if len(out) == domain.MaxPaths {
			break
		}
	}
	return out
}

// truncatePath corta no último hífen que caiba; sem hífen corta nas runas
func truncatePath(p string) string {
	if utils.RuneLen(p) <= domain.PathMaxLength {
		return p
	}
	runes := []rune(p)[:domain.PathMaxLength]
	cut := string(runes)
	if i := strings.LastIndex(cut, "-"); i > 0 {
		return cut[:i]
	}
	return cut
}
