package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um ID curto com prefixo, como "run_k3j9x0a2b1c4"
func GenerateID(prefix string, size int) (string, error) {
	id, err := gonanoid.Generate(characters, size)
	if err != nil {
		return "", err
	}
	return prefix + id, nil
}
