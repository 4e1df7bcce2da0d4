package subjects

import "github.com/cleared-dev/coamigrate/internal/model"

// DefaultChart returns a sample chart of accounts under the small-business
// accounting standard (小企业会计准则), used to seed new workspaces.
func DefaultChart() []model.Subject {
	return []model.Subject{
		asset("1001", "库存现金", ""),
		asset("1002", "银行存款", ""),
		asset("1012", "其他货币资金", ""),
		asset("1101", "短期投资", ""),
		asset("1121", "应收票据", ""),
		asset("1122", "应收账款", "客户"),
		asset("1123", "预付账款", "供应商"),
		asset("1221", "其他应收款", ""),
		asset("1403", "原材料", ""),
		asset("1405", "库存商品", ""),
		asset("1501", "长期债券投资", ""),
		asset("150101", "债券投资", ""),
		asset("1601", "固定资产", ""),
		{Code: "1602", Name: "累计折旧", CategoryType: model.CategoryTypeAsset, Direction: model.DirectionCredit},
		asset("1604", "在建工程", ""),
		asset("160401", "建筑工程", ""),
		liability("2001", "短期借款", ""),
		liability("2202", "应付账款", "供应商"),
		liability("2211", "应付职工薪酬", ""),
		liability("2221", "应交税费", ""),
		liability("222101", "应交增值税", ""),
		liability("2241", "其他应付款", ""),
		{Code: "3001", Name: "实收资本", CategoryType: model.CategoryTypeEquity, Direction: model.DirectionCredit},
		{Code: "3002", Name: "资本公积", CategoryType: model.CategoryTypeEquity, Direction: model.DirectionCredit},
		{Code: "3101", Name: "盈余公积", CategoryType: model.CategoryTypeEquity, Direction: model.DirectionCredit},
		{Code: "3103", Name: "本年利润", CategoryType: model.CategoryTypeEquity, Direction: model.DirectionCredit},
		{Code: "3104", Name: "利润分配", CategoryType: model.CategoryTypeEquity, Direction: model.DirectionCredit},
		{Code: "4001", Name: "生产成本", CategoryType: model.CategoryTypeCost, Direction: model.DirectionDebit},
		{Code: "4101", Name: "制造费用", CategoryType: model.CategoryTypeCost, Direction: model.DirectionDebit},
		{Code: "5001", Name: "主营业务收入", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionCredit},
		{Code: "5051", Name: "其他业务收入", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionCredit},
		{Code: "5401", Name: "主营业务成本", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionDebit},
		{Code: "5403", Name: "税金及附加", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionDebit},
		{Code: "5601", Name: "销售费用", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionDebit},
		{Code: "5602", Name: "管理费用", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionDebit, Auxiliary: "部门"},
		{Code: "5603", Name: "财务费用", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionDebit},
		{Code: "5711", Name: "营业外支出", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionDebit},
		{Code: "5801", Name: "所得税费用", CategoryType: model.CategoryTypeProfitAndLoss, Direction: model.DirectionDebit},
	}
}

func asset(code, name, aux string) model.Subject {
	return model.Subject{Code: code, Name: name, CategoryType: model.CategoryTypeAsset, Direction: model.DirectionDebit, Auxiliary: aux}
}

func liability(code, name, aux string) model.Subject {
	return model.Subject{Code: code, Name: name, CategoryType: model.CategoryTypeLiability, Direction: model.DirectionCredit, Auxiliary: aux}
}
