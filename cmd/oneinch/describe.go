package main

import (
	"github.com/fd1az/oneinch-nodes/business/node/domain"
)

type description struct {
	Nodes       []domain.Node           `json:"nodes"`
	Credentials []domain.CredentialType `json:"credentials"`
}

func descriptions() description {
	return description{
		Nodes:       []domain.Node{domain.OneInch(), domain.OneInchTrigger()},
		Credentials: domain.CredentialTypes(),
	}
}
