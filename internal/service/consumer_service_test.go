package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pc-estimate-be/internal/entity"
)

func TestBuildProductDocument(t *testing.T) {
	tests := []struct {
		name    string
		product entity.Product
		want    string
	}{
		{
			name: "crawled spec text wins",
			product: entity.Product{
				Category: "CPU",
				Name:     "인텔 코어i5-14400F",
				Capacity: "10코어",
				Code:     "BX8071514400F",
				Spec:     "10코어 | 16스레드 | 기본 2.5GHz | LGA1700",
			},
			want: "CPU 제품 인텔 코어i5-14400F의 주요 스펙은 10코어 | 16스레드 | 기본 2.5GHz | LGA1700입니다.",
		},
		{
			name: "capacity and code fill in when spec is empty",
			product: entity.Product{
				Category: "RAM",
				Name:     "삼성전자 DDR5-5600",
				Capacity: "16GB",
				Code:     "M323R2GA3DB0",
			},
			want: "RAM 제품 삼성전자 DDR5-5600의 주요 스펙은 16GB | M323R2GA3DB0입니다.",
		},
		{
			name: "name is the last resort",
			product: entity.Product{
				Category: "Case",
				Name:     "NZXT H6 Flow",
			},
			want: "Case 제품 NZXT H6 Flow의 주요 스펙은 NZXT H6 Flow입니다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildProductDocument(&tt.product))
		})
	}
}
