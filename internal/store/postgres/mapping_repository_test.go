package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/coamigrate/internal/model"
)

func newRepoWithMock(t *testing.T) (*MappingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMappingRepository(db), mock
}

var mappingColumns = []string{
	"source_subject_code", "source_subject_name", "source_parent_code", "source_parent_name",
	"source_subject_level", "source_subject_type", "source_debit_credit", "source_auxiliary_info",
	"target_subject_code", "target_subject_name", "target_parent_code", "target_parent_name",
	"target_subject_level", "target_subject_type", "target_debit_credit", "target_auxiliary_info",
	"match_type", "match_method", "match_score", "match_confidence", "match_reason",
	"mapping_status", "is_confirmed", "is_modified", "validation_result", "conflict_flag",
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows(mappingColumns).
		AddRow(
			"1001", "库存现金", nil, nil, int64(1), "资产", "借", nil,
			"1001", "库存现金", nil, nil, int64(1), "资产", "借", nil,
			"完全匹配", "直接匹配", "100.00", "高", "编码和名称完全一致",
			"已确认", true, false, "通过", false,
		).
		AddRow(
			"1122", "应收账款", nil, nil, nil, "资产", "借", "客户",
			"1122", "应收账款", nil, nil, nil, "资产", "借", "客户",
			"语义匹配（大模型）", "大模型语义匹配", "95", "高", "大模型分析：名称和属性一致",
			"待确认", nil, nil, nil, nil,
		)
	mock.ExpectQuery("SELECT source_subject_code, source_subject_name").
		WithArgs("BATCH001").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "BATCH001")
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "1001", first.Source.Code)
	assert.Equal(t, 1, first.Source.Level)
	assert.Empty(t, first.Source.ParentCode)
	assert.Equal(t, model.CategoryTypeAsset, first.Target.CategoryType)
	assert.True(t, first.Score.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, model.ConfidenceHigh, first.Confidence)
	assert.Equal(t, model.MappingStatusConfirmed, first.Status)
	assert.True(t, first.Confirmed)

	second := got[1]
	assert.Equal(t, "客户", second.Target.Auxiliary)
	assert.Zero(t, second.Target.Level)
	assert.False(t, second.Confirmed, "NULL flags read as false")
	assert.Empty(t, second.Validation)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery("SELECT source_subject_code").
		WithArgs("").
		WillReturnError(errors.New("relation \"subject_mapping\" does not exist"))

	_, err := repo.List(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query subject mappings")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS subject_mapping").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceBatch(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	ms := []model.Mapping{
		{
			Source:     model.Subject{Code: "1001", Name: "库存现金", Level: 1},
			Target:     model.Subject{Code: "1001", Name: "库存现金", Level: 1},
			MatchType:  "完全匹配",
			Score:      decimal.NewFromInt(100),
			Confidence: model.ConfidenceHigh,
			Status:     model.MappingStatusConfirmed,
			Confirmed:  true,
		},
		{
			Source: model.Subject{Code: "1101", Name: "短期投资"},
			Status: model.MappingStatusPending,
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM subject_mapping").
		WithArgs("BATCH001").
		WillReturnResult(sqlmock.NewResult(0, 3))
	for range ms {
		args := make([]driver.Value, 27)
		args[0] = "BATCH001"
		for i := 1; i < len(args); i++ {
			args[i] = sqlmock.AnyArg()
		}
		mock.ExpectExec("INSERT INTO subject_mapping").
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceBatch(context.Background(), "BATCH001", ms))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceBatch_RollsBackOnError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM subject_mapping").
		WithArgs("BATCH001").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO subject_mapping").
		WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	err := repo.ReplaceBatch(context.Background(), "BATCH001", []model.Mapping{{Status: model.MappingStatusPending}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert mapping 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectArgs_NullsBlankFields(t *testing.T) {
	args := subjectArgs(model.Subject{Code: "1001"})
	require.Len(t, args, 8)
	assert.Equal(t, nullString("1001"), args[0])
	assert.False(t, nullString("").Valid)
	assert.Equal(t, nullString(""), args[1])
}
