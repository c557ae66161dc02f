package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetflow/budgetflow/internal/models"
)

const importFixture = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02">
  <BkToCstmrStmt>
    <Stmt>
      <Id>STMT-2025-06</Id>
      <Acct><Id><IBAN>DE89370400440532013000</IBAN></Id></Acct>
      <Ntry>
        <Amt Ccy="EUR">15.99</Amt>
        <CdtDbtInd>DBIT</CdtDbtInd>
        <BookgDt><Dt>2025-06-10</Dt></BookgDt>
        <NtryDtls><TxDtls><RltdPties><Cdtr><Nm>Netflix</Nm></Cdtr></RltdPties></TxDtls></NtryDtls>
      </Ntry>
      <Ntry>
        <Amt Ccy="EUR">2500.00</Amt>
        <CdtDbtInd>CRDT</CdtDbtInd>
        <BookgDt><Dt>2025-06-01</Dt></BookgDt>
        <NtryDtls><TxDtls><RltdPties><Dbtr><Nm>ACME Payroll</Nm></Dbtr></RltdPties></TxDtls></NtryDtls>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func TestImportStatement_DryRun(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	result, err := svc.ImportStatement(ctx, 1, []byte(importFixture), true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, "STMT-2025-06", result.BatchID)
	assert.Equal(t, "DE89370400440532013000", result.Account)
	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Preview, 2)
	assert.InDelta(t, -15.99, result.Preview[0].Amount, 1e-9)
	assert.Equal(t, "Netflix", result.Preview[0].Merchant)

	// nothing was written
	txs, err := store.ListTransactions(ctx, 1, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestImportStatement_IdempotentPerBatch(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	first, err := svc.ImportStatement(ctx, 1, []byte(importFixture), false)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)
	assert.False(t, first.Skipped)

	second, err := svc.ImportStatement(ctx, 1, []byte(importFixture), false)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, 0, second.Imported)

	txs, err := store.ListTransactions(ctx, 1, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, "STMT-2025-06", tx.ImportBatch)
		assert.Equal(t, "DE89370400440532013000", tx.Account)
	}
}

func TestImportStatement_BadXML(t *testing.T) {
	svc, _ := newTestService(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	_, err := svc.ImportStatement(context.Background(), 1, []byte("not xml <"), false)
	assert.Error(t, err)
}

func TestCreateTransaction_DefaultsDateToToday(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Date(2025, 6, 15, 17, 45, 0, 0, time.UTC))

	tx, err := svc.CreateTransaction(ctx, &models.Transaction{UserID: 1, Amount: -12.5, Merchant: "Bakery"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), tx.Date)
}
